// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/viper"

	"github.com/pdiddy/research-fields/internal/logger"
	"github.com/pdiddy/research-fields/pkg/types"
)

// analysisConfig collects the analyze settings from flags, env and the
// config file.
func analysisConfig() types.AnalysisConfig {
	return types.AnalysisConfig{
		InputPath:  viper.GetString("analyze.input"),
		OutputPath: viper.GetString("analyze.output"),
		CSVPath:    viper.GetString("analyze.csv"),
		XLSXPath:   viper.GetString("analyze.xlsx"),
		TopFields:  viper.GetInt("analyze.top"),
		TopPopular: viper.GetInt("analyze.popular"),
	}
}

func storeConfig() types.StoreConfig {
	dir := viper.GetString("store.dir")
	if dir == "" {
		dir = types.DefaultStoreDir
	}
	return types.StoreConfig{
		Dir:        dir,
		MaxResults: viper.GetInt("store.max_results"),
	}
}

// serverConfig falls back to the analyze output file when no results path
// is configured for the server.
func serverConfig() types.ServerConfig {
	addr := viper.GetString("serve.addr")
	if addr == "" {
		addr = types.DefaultServeAddr
	}
	return types.ServerConfig{
		Addr:        addr,
		ResultsPath: resultsPath(viper.GetString("serve.results")),
	}
}

func resultsPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := viper.GetString("analyze.output"); p != "" {
		return p
	}
	return types.DefaultOutputFile
}

func newLogger() *logger.Logger {
	return logger.New(types.LogConfig{
		Level:  viper.GetString("log.level"),
		Format: viper.GetString("log.format"),
	})
}

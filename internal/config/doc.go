// Package config provides configuration parsing for wecco projects.
//
// The configuration is stored at the project root, in wecco.json or, when
// no JSON file exists, in wecco.yaml / wecco.yml. This package handles
// loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "name": "todo",
//	  "logLevel": "info",
//	  "debug": false,
//	  "stripMarkers": false,
//	  "pretty": true,
//	  "indent": "  ",
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "wecco"
//	  },
//	  "watch": {
//	    "debounce": "100ms"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	level, _ := cfg.SlogLevel()
package config

// Package config provides configuration parsing for assetref projects.
//
// The configuration is stored in assetref.json (or assetref.yaml) at the
// project root. This package handles loading, saving, and validating it.
//
// # Configuration File Structure
//
//	{
//	  "roots": {
//	    "example.com/site": "./site",
//	    "example.com/theme": "./vendor/theme"
//	  },
//	  "modules": "./modules",
//	  "sitePrefix": "assets",
//	  "cacheSize": 128,
//	  "output": "dist",
//	  "fingerprint": true,
//	  "assetAttrs": {
//	    "link": ["href"],
//	    "script": ["src"],
//	    "img": ["src"]
//	  },
//	  "s3": {
//	    "bucket": "my-assets",
//	    "prefix": "static",
//	    "modules": "modules",
//	    "region": "eu-west-1"
//	  },
//	  "server": {
//	    "addr": ":8080",
//	    "metrics": "/metrics"
//	  }
//	}
//
// The YAML form uses the same keys.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	loader := cfg.Loader()
package config

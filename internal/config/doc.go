// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

/*
Package config provides layered configuration loading for Hybridrec.

Configuration is assembled with Koanf v2 from three sources, later sources
overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. A YAML file (config.yaml, or the path in CONFIG_PATH)
 3. Environment variables, through an explicit name mapping

Only mapped environment variables are read. The signal weights keep the
historical names used by operators:

	MF_WEIGHT=0.5 CBF_WEIGHT=0.4 POPULAR_WEIGHT=0.3
	TIME_BASE_WEIGHT=0.2 DEVICE_WEIGHT=0.2
	NEW_USER_POPULAR_WEIGHT=0.5 NEW_USER_TIME_BASE_WEIGHT=0.3 ...

The cache backend is selected with CACHE_BACKEND (memory, redis, badger,
none); Redis is addressed with REDIS_HOST, REDIS_PORT and REDIS_DB.

# Example config.yaml

	recommend:
	  top_n: 5
	  weights:
	    returning: {mf: 0.5, cbf: 0.4, popular: 0.3, time_based: 0.2, device_based: 0.2}
	cache:
	  backend: redis
	  redis:
	    host: localhost
	    port: 6379
	worker:
	  mode: parallel
	  workers: 8
	server:
	  enabled: true
	  port: 8080
*/
package config

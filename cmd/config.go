package main

import "time"

type Config struct {
	BadgerFilepath      string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel            string        `env:"LOG_LEVEL,required=true"`
	JWTSecret           string        `env:"JWT_SECRET,required=true"`
	FrontendDomain      string        `env:"FRONTEND_DOMAIN,required=true"`
	Host                string        `env:"HOST,default=localhost"`
	Port                int           `env:"PORT,default=8080"`
	DebugPort           int           `env:"DEBUG_PORT"`
	OutboxSize          int           `env:"OUTBOX_SIZE,default=256"`
	PresenceSnapshotCap int           `env:"PRESENCE_SNAPSHOT_CAP,default=100"`
	RestartInterval     time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	StatsInterval       time.Duration `env:"STATS_INTERVAL,default=30s"`
}

package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gmstracker/backend/internal/appconfig"
)

func Configure(conf *appconfig.Config) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	fileWriter := &lumberjack.Logger{
		Filename:   "logs/app.log",
		MaxSize:    64, // megabytes
		MaxBackups: 7,
		MaxAge:     30, // days
		Compress:   true,
	}

	var stdoutWriter io.Writer
	if conf.LogJsonStdout {
		stdoutWriter = os.Stdout
	} else {
		stdoutWriter = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339Nano,
		}
	}

	level := zerolog.InfoLevel
	if conf.DevMode {
		level = zerolog.TraceLevel
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(fileWriter, stdoutWriter)).
		With().
		Timestamp().
		Logger().
		Level(level)
}

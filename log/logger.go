package log // import "github.com/storyworld/storyworld/log"

import (
	"os"
	"path/filepath"

	"github.com/storyworld/storyworld/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger *zap.Logger

func init() {
	if config.Opts == nil {
		config.GetDefaultOptions()
	}
	Logger = NewLogger()
}

func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger.Error(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	Logger.Fatal(msg, fields...)
}

func NewLogger() *zap.Logger {
	rotationLog := &lumberjack.Logger{
		Filename:   filepath.Join(config.Opts.Data, config.Opts.LogFile),
		MaxSize:    config.Opts.LogFileMaxSize, // megabytes
		MaxBackups: config.Opts.LogFileMaxBackups,
		MaxAge:     config.Opts.LogFileMaxAge, // days
		Compress:   config.Opts.LogCompress,
	}

	return newZap(rotationLog, parseLevel(config.Opts.LogLevel))
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func newZap(rotationLog *lumberjack.Logger, level zapcore.Level) *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	fileEncoder := zapcore.NewJSONEncoder(cfg)
	consoleEncoder := zapcore.NewConsoleEncoder(cfg)

	consoleWriter := zapcore.AddSync(os.Stdout)
	rotationWriter := zapcore.AddSync(rotationLog)

	consoleCore := zapcore.NewCore(consoleEncoder, consoleWriter, level)
	rotationCore := zapcore.NewCore(fileEncoder, rotationWriter, level)

	core := zapcore.NewTee(consoleCore, rotationCore)

	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
}

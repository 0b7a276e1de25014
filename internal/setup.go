package internal

import (
	"github.com/mattn/go-isatty"
	"github.com/morikuni/failure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	LogFormatAuto  = "auto"
	LogFormatHuman = "human"
	LogFormatJSON  = "json"

	InvalidLogSetting failure.StringCode = "InvalidLogSetting"
)

func formatFrame(frame failure.Frame) string {
	return frame.Pkg() + "." + frame.Func() + ":" + strconv.Itoa(frame.Line())
}

func errorStackMarshaller(err error) interface{} {
	if cs, ok := failure.CallStackOf(err); ok {
		frames := cs.Frames()
		res := make([]string, 0, len(frames))
		for _, frame := range frames {
			res = append(res, formatFrame(frame))
		}
		return res
	}
	return err
}

func useConsoleWriter(logFormat string) (bool, error) {
	switch logFormat {
	case LogFormatAuto:
		return IsDev(), nil
	case LogFormatHuman:
		return true, nil
	case LogFormatJSON:
		return false, nil
	}
	return false, failure.New(InvalidLogSetting,
		failure.Context{"format": logFormat},
		failure.Message("invalid log format, expected: [auto, json, human]"),
	)
}

// NewLogger builds the process logger writing to out.
func NewLogger(out io.Writer, logFormat string) (zerolog.Logger, error) {
	console, err := useConsoleWriter(logFormat)
	if err != nil {
		return zerolog.Nop(), err
	}
	writer := out
	if console {
		writer = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = out
			if f, ok := out.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
				w.NoColor = true
			}
		})
	}
	return zerolog.New(writer).With().Timestamp().Str("service", "folio").Logger(), nil
}

func SetUpLogger(logLevel string, logFormat string) error {
	level, err := zerolog.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		return failure.Translate(err, InvalidLogSetting, failure.Context{"level": logLevel})
	}
	logger, err := NewLogger(os.Stdout, logFormat)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = logger
	zerolog.ErrorStackMarshaler = errorStackMarshaller
	return nil
}

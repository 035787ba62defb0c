package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-fxa-oauth/internal/config"
	"github.com/jrsteele09/go-fxa-oauth/oauthclient"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	exitCodeError         = 1
	exitCodeOutOfProtocol = 2
	exitCodeScopeMismatch = 3
)

func main() {
	c := config.New()
	initLogging(c.GetLogLevel())

	cmd := newRootCmd(c, os.Stdout)
	if err := cmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

func initLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, oauthclient.ErrOutOfProtocol):
		return exitCodeOutOfProtocol
	case errors.Is(err, oauthclient.ErrScopeMismatch):
		return exitCodeScopeMismatch
	}
	return exitCodeError
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

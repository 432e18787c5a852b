package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/manifoldco/promptui"
	"github.com/zeebo/errs"

	"github.com/soulfoods/sales-dashboard/pkg/fancy"
)

var usageErr = errs.Class("usage")

func cmdCtx() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-ch
		fmt.Fprintf(os.Stderr, "Signal %q received\n", sig)
		cancel()
	}()
	return ctx
}

func checkCmd(err error) error {
	switch {
	case err == nil:
		return nil
	case usageErr.Has(err):
		// If it is a usage error, return it directly so cobra command will
		// show usage. Otherwise, print and exit with non-zero exit status.
		return err
	}
	// other errors exit with 2
	fancy.Ferrorf(os.Stderr, "error: %+v\n", err)
	os.Exit(2)
	return err
}

func promptConfirm(label string) error {
	_, err := (&promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}).Run()
	if err != nil {
		return errs.New("aborted")
	}
	return nil
}

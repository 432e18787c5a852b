package main

import (
	"github.com/manifoldco/promptui"
	"github.com/zeebo/errs"
)

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

package main

import (
	"github.com/sirupsen/logrus"

	"github.com/rubenv/dateline/cmd"
)

func main() {
	err := cmd.Run()
	if err != nil {
		logrus.Fatal(err.Error())
	}
}

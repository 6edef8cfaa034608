package cli

import (
	"github.com/wanderdata/wanderdata/core/cli/cmd"
	"github.com/wanderdata/wanderdata/core/logger"
)

// Execute runs the CLI and logs a failure under the tag of the layer that
// produced it
func Execute() error {
	err := cmd.Execute()
	if err != nil {
		logger.New(logger.ErrorTag(err)).Error(err.Error())
	}
	return err
}

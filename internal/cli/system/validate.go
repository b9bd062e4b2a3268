package system

import (
	"fmt"

	"github.com/lo3003/studyplanner/internal/cli"
)

type ValidateCmd struct{}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	result, err := ctx.ValidateStore(ctx.CurrentTime())
	if err != nil {
		return err
	}
	fmt.Print(result.FormatReport())
	if !result.HasConflicts() {
		fmt.Println()
		return nil
	}
	return fmt.Errorf("%d conflicts found", len(result.Conflicts))
}

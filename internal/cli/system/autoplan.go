package system

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/lo3003/studyplanner/internal/cli"
	"github.com/lo3003/studyplanner/internal/logger"
	"github.com/lo3003/studyplanner/internal/utils"
)

// AutoplanCmd stays in the foreground and regenerates the plan once a day.
type AutoplanCmd struct {
	At  string `help:"Time of day to regenerate (HH:MM)." default:"06:00"`
	Now bool   `help:"Also regenerate once at startup."`
}

func (c *AutoplanCmd) Validate() error {
	_, err := DailySpec(c.At)
	return err
}

// DailySpec turns HH:MM into a seconds-field cron spec firing once a day.
func DailySpec(at string) (string, error) {
	hour, minute, err := utils.ParseClock(at)
	if err != nil {
		return "", err
	}
	// second minute hour dom month dow
	return fmt.Sprintf("0 %d %d * * *", minute, hour), nil
}

// cronLogger routes cron's own messages to the application log.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error("cron: "+msg, append([]interface{}{"error", err}, keysAndValues...)...)
}

// Regenerate runs one unattended plan and saves it. Warnings are logged, not fatal.
func Regenerate(ctx *cli.Context) error {
	now := ctx.CurrentTime()
	result, err := ctx.GeneratePlan(now)
	if err != nil {
		return err
	}
	if err := ctx.ApplyPlan(now, result); err != nil {
		return err
	}
	for _, w := range result.Warnings {
		logger.Warn("Task could not be fully scheduled", "task", w.TaskTitle, "unscheduled_hours", w.UnscheduledHours)
	}
	return nil
}

func (c *AutoplanCmd) Run(ctx *cli.Context) error {
	spec, err := DailySpec(c.At)
	if err != nil {
		return err
	}

	loc := ctx.Location
	if loc == nil {
		loc = time.Local
	}
	runner := cron.New(
		cron.WithLocation(loc),
		cron.WithSeconds(),
		cron.WithLogger(cronLogger{}),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{})),
	)

	job := func() {
		if err := Regenerate(ctx); err != nil {
			logger.Error("Scheduled regeneration failed", "error", err)
			return
		}
		fmt.Printf("%s plan regenerated\n", ctx.CurrentTime().Format(time.DateTime))
	}
	if _, err := runner.AddFunc(spec, job); err != nil {
		return fmt.Errorf("failed to schedule regeneration: %w", err)
	}

	if c.Now {
		job()
	}

	runner.Start()
	next := runner.Entries()[0].Next
	fmt.Printf("Regenerating daily at %s (next run %s). Press Ctrl+C to stop.\n", c.At, next.Format(time.DateTime))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	// wait for a running job to finish
	<-runner.Stop().Done()
	fmt.Println("Stopped.")
	return nil
}

package dispatch

import (
	"errors"
	"fmt"
	"math"
	"runtime/debug"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"coinbot/bot/common"
	"coinbot/infrastructure/observability"
)

// Dispatcher routes parsed commands through the permission, feature and cooldown gates
type Dispatcher struct {
	registry  *Registry
	cooldowns *Cooldowns
	metrics   *observability.MetricsProvider
	now       func() time.Time
}

// NewDispatcher creates a dispatcher over registry. metrics may be nil.
func NewDispatcher(registry *Registry, metrics *observability.MetricsProvider) *Dispatcher {
	return &Dispatcher{
		registry:  registry,
		cooldowns: NewCooldowns(),
		metrics:   metrics,
		now:       time.Now,
	}
}

// Registry returns the dispatcher's command registry
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch handles a raw message. It reports whether the message was a command.
func (d *Dispatcher) Dispatch(ctx *Context, content string) bool {
	cmd, args, ok := d.registry.Resolve(content, ctx.Prefix)
	if !ok {
		return false
	}
	ctx.Command = cmd.Name
	ctx.Args = args

	d.Run(cmd, ctx)
	return true
}

// Run executes a resolved command
func (d *Dispatcher) Run(cmd *Command, ctx *Context) {
	if !CheckPermission(cmd, ctx) {
		if !ctx.InGuild() {
			d.reply(ctx, "❌ This command can only be used in a server.")
			return
		}
		d.reply(ctx, "❌ You don't have permission to use this command.")
		return
	}

	if cmd.Feature != "" && ctx.Config != nil && !ctx.Config.IsFeatureEnabled(cmd.Feature) {
		d.reply(ctx, fmt.Sprintf("❌ The %s system is disabled on this server.", strings.TrimSuffix(cmd.Feature, "_enabled")))
		return
	}

	now := d.now()
	if remaining, waiting := d.cooldowns.Remaining(cmd, ctx.UserID(), now); waiting {
		seconds := int64(math.Ceil(remaining.Seconds()))
		d.reply(ctx, fmt.Sprintf("⏱️ Please wait %d more second(s) before using the `%s` command.", seconds, cmd.Name))
		return
	}

	start := time.Now()
	err := d.invoke(cmd, ctx)
	errorType := ""
	if err != nil {
		errorType = d.handleError(cmd, ctx, err)
	} else {
		d.cooldowns.Record(cmd, ctx.UserID(), now)
	}

	d.metrics.RecordCommand(cmd.Name, time.Since(start), errorType)
}

func (d *Dispatcher) invoke(cmd *Command, ctx *Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r, stack: debug.Stack()}
		}
	}()
	return cmd.Handler(ctx)
}

func (d *Dispatcher) handleError(cmd *Command, ctx *Context, err error) string {
	fields := log.Fields{
		"command":  cmd.Name,
		"user_id":  ctx.UserID(),
		"guild_id": ctx.GuildID,
	}

	var pe *panicError
	if errors.As(err, &pe) {
		fields["stack"] = string(pe.stack)
		log.WithFields(fields).Errorf("Command panicked: %v", pe.value)
		d.reply(ctx, "❌ "+common.GenericErrorMessage)
		return observability.ErrorTypePanic
	}

	var botErr *common.BotError
	if errors.As(err, &botErr) {
		if botErr.IsUserError() {
			log.WithFields(fields).Debug(botErr.LogMessage)
			d.reply(ctx, "❌ "+botErr.UserMessage)
			return observability.ErrorTypeUser
		}
		if botErr.Context != nil {
			fields["context"] = botErr.Context
		}
		log.WithFields(fields).WithError(botErr.Err).Error(botErr.LogMessage)
		d.reply(ctx, "❌ "+botErr.UserMessage)
		return observability.ErrorTypeSystem
	}

	log.WithFields(fields).WithError(err).Error("Command failed")
	d.reply(ctx, "❌ "+common.GenericErrorMessage)
	return observability.ErrorTypeSystem
}

func (d *Dispatcher) reply(ctx *Context, content string) {
	if err := ctx.Reply(content); err != nil {
		log.WithFields(log.Fields{
			"command":    ctx.Command,
			"channel_id": ctx.ChannelID,
		}).WithError(err).Warn("Failed to send reply")
	}
}

type panicError struct {
	value any
	stack []byte
}

func (p *panicError) Error() string {
	return fmt.Sprintf("panic: %v", p.value)
}

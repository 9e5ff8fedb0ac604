package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// Intent names a parameterless user intent.
type Intent string

const (
	IntentRefreshStaticAPIs Intent = "refresh_static_apis"
	IntentToggleWizard      Intent = "toggle_wizard"
	IntentCloseAlert        Intent = "close_alert"
	IntentClearError        Intent = "clear_error"
	IntentToggleMobileMenu  Intent = "toggle_mobile_menu"
	IntentCloseMobileMenu   Intent = "close_mobile_menu"
)

// IntentInput carries the acting user for parameterless intents.
type IntentInput struct {
	Actor
}

type intentView interface {
	RefreshStaticAPIs(ctx context.Context)
	ToggleWizard(ctx context.Context)
	HandleClose(ctx context.Context)
	ClearError(ctx context.Context)
	ToggleMobileMenu(ctx context.Context)
	CloseMobileMenu(ctx context.Context)
}

// IntentCommand forwards one parameterless intent to the dashboard view.
type IntentCommand struct {
	intent    Intent
	view      intentView
	telemetry Telemetry
}

// NewIntentCommand creates the command for intent.
func NewIntentCommand(intent Intent, view intentView, telemetry Telemetry) *IntentCommand {
	return &IntentCommand{intent: intent, view: view, telemetry: normalizeTelemetry(telemetry)}
}

// NewRefreshStaticAPIsCommand asks the store to refresh static API definitions.
func NewRefreshStaticAPIsCommand(view intentView, telemetry Telemetry) *IntentCommand {
	return NewIntentCommand(IntentRefreshStaticAPIs, view, telemetry)
}

// NewToggleWizardCommand toggles the onboarding wizard.
func NewToggleWizardCommand(view intentView, telemetry Telemetry) *IntentCommand {
	return NewIntentCommand(IntentToggleWizard, view, telemetry)
}

// NewCloseAlertCommand dismisses the password-updated alert.
func NewCloseAlertCommand(view intentView, telemetry Telemetry) *IntentCommand {
	return NewIntentCommand(IntentCloseAlert, view, telemetry)
}

// NewClearErrorCommand dismisses the static refresh error dialog.
func NewClearErrorCommand(view intentView, telemetry Telemetry) *IntentCommand {
	return NewIntentCommand(IntentClearError, view, telemetry)
}

// NewToggleMobileMenuCommand opens or closes the mobile navigation.
func NewToggleMobileMenuCommand(view intentView, telemetry Telemetry) *IntentCommand {
	return NewIntentCommand(IntentToggleMobileMenu, view, telemetry)
}

// NewCloseMobileMenuCommand closes the mobile navigation.
func NewCloseMobileMenuCommand(view intentView, telemetry Telemetry) *IntentCommand {
	return NewIntentCommand(IntentCloseMobileMenu, view, telemetry)
}

var _ gocommand.Commander[IntentInput] = (*IntentCommand)(nil)

// Intent reports which intent the command forwards.
func (c *IntentCommand) Intent() Intent { return c.intent }

// Execute forwards the intent.
func (c *IntentCommand) Execute(ctx context.Context, msg IntentInput) error {
	if c.view == nil {
		return errors.New("intent command requires view")
	}
	ctx = msg.Actor.bind(ctx)
	switch c.intent {
	case IntentRefreshStaticAPIs:
		c.view.RefreshStaticAPIs(ctx)
	case IntentToggleWizard:
		c.view.ToggleWizard(ctx)
	case IntentCloseAlert:
		c.view.HandleClose(ctx)
	case IntentClearError:
		c.view.ClearError(ctx)
	case IntentToggleMobileMenu:
		c.view.ToggleMobileMenu(ctx)
	case IntentCloseMobileMenu:
		c.view.CloseMobileMenu(ctx)
	default:
		return errors.New("unknown intent " + string(c.intent))
	}
	c.telemetry.Record(ctx, "catalog.intent", map[string]any{"intent": string(c.intent)})
	return nil
}

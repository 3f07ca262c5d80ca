package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/calmkids/calmkids/internal/auth"
	"github.com/calmkids/calmkids/internal/logging"
)

// formResult is the inline message under a form
type formResult struct {
	label *widget.Label
}

func newFormResult() *formResult {
	l := widget.NewLabel("")
	l.Wrapping = fyne.TextWrapWord
	l.Hide()
	return &formResult{label: l}
}

func (r *formResult) showError(text string) {
	r.label.Importance = widget.DangerImportance
	r.label.SetText(IconError + " " + text)
	r.label.Show()
}

func (r *formResult) showMessage(text string) {
	r.label.Importance = widget.SuccessImportance
	r.label.SetText(text)
	r.label.Show()
}

// AccountForms holds the register, forgot password and reset password forms
type AccountForms struct {
	backend      Backend
	localization *Localization
	mobile       *MobileUI
	logger       *zap.Logger

	// Registration
	firstName *widget.Entry
	lastName  *widget.Entry
	regEmail  *widget.Entry
	regPass   *widget.Entry
	age       *widget.Entry
	contact   *widget.Entry
	regResult *formResult
	regSubmit *widget.Button

	// Forgot password
	forgotEmail  *widget.Entry
	forgotResult *formResult
	forgotSubmit *widget.Button

	// Reset password
	resetToken   *widget.Entry
	resetEmail   *widget.Entry
	resetPass    *widget.Entry
	resetConfirm *widget.Entry
	resetResult  *formResult
	resetSubmit  *widget.Button

	tabs *container.AppTabs
}

// NewAccountForms creates the account forms
func NewAccountForms(backend Backend, loc *Localization, mobile *MobileUI, logger *zap.Logger) *AccountForms {
	af := &AccountForms{
		backend:      backend,
		localization: loc,
		mobile:       mobile,
		logger:       logging.OrNop(logger).With(zap.String("screen", "account")),
	}
	af.createUI()
	return af
}

// Content returns the forms as tabs
func (af *AccountForms) Content() fyne.CanvasObject {
	return af.tabs
}

// ShowReset selects the reset tab with the emailed token filled in
func (af *AccountForms) ShowReset(token, email string) {
	af.resetToken.SetText(token)
	af.resetEmail.SetText(email)
	af.tabs.SelectIndex(2)
}

func (af *AccountForms) createUI() {
	loc := af.localization

	af.firstName = af.mobile.CreateMobileEntry(loc.GetText(KeyFirstName))
	af.lastName = af.mobile.CreateMobileEntry(loc.GetText(KeyLastName))
	af.regEmail = af.mobile.CreateMobileEntry(loc.GetText(KeyEmail))
	af.regPass = widget.NewPasswordEntry()
	af.age = af.mobile.CreateMobileEntry(loc.GetText(KeyAge))
	af.contact = af.mobile.CreateMobileEntry(loc.GetText(KeyContact))
	af.regResult = newFormResult()
	af.regSubmit = widget.NewButton(loc.GetText(KeyRegister), af.SubmitRegister)
	af.regSubmit.Importance = widget.HighImportance

	register := container.NewVBox(
		af.mobile.FormLayout(
			widget.NewFormItem(loc.GetText(KeyFirstName), af.firstName),
			widget.NewFormItem(loc.GetText(KeyLastName), af.lastName),
			widget.NewFormItem(loc.GetText(KeyEmail), af.regEmail),
			widget.NewFormItem(loc.GetText(KeyPassword), af.regPass),
			widget.NewFormItem(loc.GetText(KeyAge), af.age),
			widget.NewFormItem(loc.GetText(KeyContact), af.contact),
		),
		af.regResult.label,
		af.regSubmit,
	)

	af.forgotEmail = af.mobile.CreateMobileEntry(loc.GetText(KeyEmail))
	af.forgotResult = newFormResult()
	af.forgotSubmit = widget.NewButton(loc.GetText(KeySendResetLink), af.SubmitForgot)
	af.forgotSubmit.Importance = widget.HighImportance

	forgot := container.NewVBox(
		af.mobile.FormLayout(widget.NewFormItem(loc.GetText(KeyEmail), af.forgotEmail)),
		af.forgotResult.label,
		af.forgotSubmit,
	)

	af.resetToken = af.mobile.CreateMobileEntry(loc.GetText(KeyResetToken))
	af.resetEmail = af.mobile.CreateMobileEntry(loc.GetText(KeyEmail))
	af.resetPass = widget.NewPasswordEntry()
	af.resetConfirm = widget.NewPasswordEntry()
	af.resetResult = newFormResult()
	af.resetSubmit = widget.NewButton(loc.GetText(KeyResetPassword), af.SubmitReset)
	af.resetSubmit.Importance = widget.HighImportance

	reset := container.NewVBox(
		af.mobile.FormLayout(
			widget.NewFormItem(loc.GetText(KeyResetToken), af.resetToken),
			widget.NewFormItem(loc.GetText(KeyEmail), af.resetEmail),
			widget.NewFormItem(loc.GetText(KeyPassword), af.resetPass),
			widget.NewFormItem(loc.GetText(KeyConfirmPassword), af.resetConfirm),
		),
		af.resetResult.label,
		af.resetSubmit,
	)

	af.tabs = container.NewAppTabs(
		container.NewTabItem(loc.GetText(KeyRegister), container.NewVScroll(register)),
		container.NewTabItem(loc.GetText(KeyForgotPassword), container.NewVScroll(forgot)),
		container.NewTabItem(loc.GetText(KeyResetPassword), container.NewVScroll(reset)),
	)
}

// SubmitRegister validates the registration form and sends it
func (af *AccountForms) SubmitRegister() {
	req := auth.RegisterRequest{
		FirstName: af.firstName.Text,
		LastName:  af.lastName.Text,
		Email:     af.regEmail.Text,
		Password:  af.regPass.Text,
		Age:       af.age.Text,
		Contact:   af.contact.Text,
	}
	if err := auth.ValidateRegistration(req); err != nil {
		af.regResult.showError(errorText(err, af.localization))
		return
	}

	af.submit(af.regSubmit, af.regResult, func(ctx context.Context) (string, error) {
		return af.backend.Register(ctx, req)
	})
}

// SubmitForgot validates the email and requests a reset link
func (af *AccountForms) SubmitForgot() {
	email := af.forgotEmail.Text
	if err := auth.ValidateEmail(email); err != nil {
		af.forgotResult.showError(errorText(err, af.localization))
		return
	}

	af.submit(af.forgotSubmit, af.forgotResult, func(ctx context.Context) (string, error) {
		return af.backend.ForgotPassword(ctx, email)
	})
}

// SubmitReset validates the new password locally, then resets it
func (af *AccountForms) SubmitReset() {
	token, email := af.resetToken.Text, af.resetEmail.Text
	password, confirm := af.resetPass.Text, af.resetConfirm.Text

	if err := auth.ValidateResetPassword(password, confirm); err != nil {
		af.resetResult.showError(errorText(err, af.localization))
		return
	}

	af.submit(af.resetSubmit, af.resetResult, func(ctx context.Context) (string, error) {
		return af.backend.ResetPassword(ctx, token, email, password, confirm)
	})
}

// submit runs call off the UI goroutine with the button disabled
func (af *AccountForms) submit(btn *widget.Button, result *formResult, call func(context.Context) (string, error)) {
	btn.Disable()
	result.showMessage(af.localization.GetText(KeyLoading))

	go func() {
		msg, err := call(context.Background())
		if err != nil {
			af.logger.Warn("account request failed", zap.Error(err))
		}
		fyne.Do(func() {
			btn.Enable()
			if err != nil {
				result.showError(errorText(err, af.localization))
				return
			}
			result.showMessage(msg)
		})
	}()
}

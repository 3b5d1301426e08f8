// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package txn orchestrates deposits, withdrawals, and the other banking
// operations against the gateway.
//
// Each form runs a small state machine: idle -> submitting -> idle. An
// in-flight lock per form rejects duplicate submissions, static validation
// runs before anything touches the network, and every successful mutation
// is followed by resynchronizing reads so the displayed balance and history
// come from the server's authoritative state, not the mutation response.
package txn

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/securebank-tui/internal/gateway"
	"github.com/jeranaias/securebank-tui/internal/session"
	"github.com/jeranaias/securebank-tui/internal/util"
)

// =============================================================================
// FORMS
// =============================================================================

// FormID identifies one form's in-flight lock. Independent forms may have
// concurrently outstanding calls; within one form at most one call is ever
// outstanding.
type FormID int

const (
	FormLogin FormID = iota
	FormRegister
	FormProfile
	FormDeposit
	FormWithdraw
	FormUpdateBalance
	FormInterest
	FormNotify
	FormRoster
)

// =============================================================================
// STATUS MESSAGES
// =============================================================================

// MessageKind classifies the status message for display.
type MessageKind int

const (
	MessageSuccess MessageKind = iota
	MessageError
)

// MessageWindow is how long a status message stays visible before it is
// cleared automatically.
const MessageWindow = 5 * time.Second

// =============================================================================
// GATEWAY DEPENDENCY
// =============================================================================

// Gateway is the slice of the banking client the controller needs.
// Declared here so tests can substitute a fake.
type Gateway interface {
	LoginCustomer(ctx context.Context, email, password string) (gateway.Customer, error)
	RegisterCustomer(ctx context.Context, customer gateway.Customer) (gateway.Customer, error)
	UpdateCustomer(ctx context.Context, customer gateway.Customer) (gateway.Customer, error)
	ListCustomers(ctx context.Context) ([]gateway.Customer, error)
	DeleteCustomer(ctx context.Context, customerID string) error
	Deposit(ctx context.Context, accountNo string, amount float64) (float64, error)
	Withdraw(ctx context.Context, accountNo string, amount float64) (float64, error)
	GetAccount(ctx context.Context, accountNo string) (gateway.Account, error)
	CheckBalance(ctx context.Context, accountNo string) (float64, error)
	UpdateBalance(ctx context.Context, accountNo string, newBalance float64) (gateway.Account, error)
	TransactionHistory(ctx context.Context, accountNo string) ([]gateway.Transaction, error)
	CalculateInterest(ctx context.Context, accountNo string, rate float64, years int) (float64, error)
	SendNotification(ctx context.Context, accountNo, message string) (string, error)
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller coordinates the banking forms for the running client. It reads
// the account identity from the session store, issues gateway calls as
// Bubble Tea commands, and owns the locally displayed account/history
// mirror.
type Controller struct {
	mu sync.Mutex

	sessions *session.Store
	gw       Gateway
	timeout  time.Duration

	inFlight map[FormID]bool

	// Status message with visibility window
	statusText string
	statusKind MessageKind
	statusGen  int

	// Cached mirror of server state, refreshed after every mutation
	account   *gateway.Account
	history   []gateway.Transaction
	customers []gateway.Customer
	profile   *gateway.Customer
}

// NewController creates a controller over the given session store and
// gateway.
func NewController(sessions *session.Store, gw Gateway) *Controller {
	return &Controller{
		sessions: sessions,
		gw:       gw,
		timeout:  30 * time.Second,
		inFlight: make(map[FormID]bool),
	}
}

// InFlight reports whether a call is outstanding for the form.
func (c *Controller) InFlight(form FormID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight[form]
}

// Account returns the cached account mirror, or nil before the first load.
func (c *Controller) Account() *gateway.Account {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.account == nil {
		return nil
	}
	a := *c.account
	return &a
}

// History returns the cached transaction history, newest first.
func (c *Controller) History() []gateway.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]gateway.Transaction, len(c.history))
	copy(out, c.history)
	return out
}

// Profile returns the signed-in customer's full server record, or nil
// before login. Carries the numeric row ID the session record omits.
func (c *Controller) Profile() *gateway.Customer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.profile == nil {
		return nil
	}
	p := *c.profile
	return &p
}

// Customers returns the cached admin roster.
func (c *Controller) Customers() []gateway.Customer {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]gateway.Customer, len(c.customers))
	copy(out, c.customers)
	return out
}

// Status returns the visible status message, if any.
func (c *Controller) Status() (text string, kind MessageKind, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusText, c.statusKind, c.statusText != ""
}

// Reset drops all cached view state and locks. Called on logout so the
// next user starts clean.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = make(map[FormID]bool)
	c.statusText = ""
	c.statusGen++
	c.account = nil
	c.history = nil
	c.customers = nil
	c.profile = nil
}

// =============================================================================
// STATUS WINDOW
// =============================================================================

// setStatus installs a status message and returns the command that clears
// it after the visibility window. The generation counter makes an expiry
// for a superseded message a no-op.
func (c *Controller) setStatus(text string, kind MessageKind) tea.Cmd {
	c.mu.Lock()
	c.statusText = text
	c.statusKind = kind
	c.statusGen++
	gen := c.statusGen
	c.mu.Unlock()

	return tea.Tick(MessageWindow, func(time.Time) tea.Msg {
		return StatusExpiredMsg{Gen: gen}
	})
}

// HandleStatusExpired clears the status message if it has not been
// superseded since the expiry was scheduled.
func (c *Controller) HandleStatusExpired(msg StatusExpiredMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if msg.Gen == c.statusGen {
		c.statusText = ""
	}
}

// =============================================================================
// SUBMISSION PLUMBING
// =============================================================================

// begin acquires the form's in-flight lock. ok is false when a call is
// already outstanding, in which case the submission must be a no-op.
func (c *Controller) begin(form FormID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight[form] {
		return false
	}
	c.inFlight[form] = true
	return true
}

// finish releases the form's in-flight lock.
func (c *Controller) finish(form FormID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight[form] = false
}

// ctx builds the per-call context.
func (c *Controller) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.timeout)
}

// accountNo reads the session's account identity. A missing session or
// account number fails static validation; nothing reaches the network.
func (c *Controller) accountNo() (string, bool) {
	no, ok := c.sessions.AccountNo()
	return no, ok && no != ""
}

// =============================================================================
// LOGIN / REGISTER
// =============================================================================

// SubmitLogin validates credentials locally and issues the login call.
// Returns nil when a login is already in flight.
func (c *Controller) SubmitLogin(email, password string) tea.Cmd {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return c.setStatus("Please enter a valid email address", MessageError)
	}
	if len(password) < 6 {
		return c.setStatus("Password must be at least 6 characters", MessageError)
	}
	if !c.begin(FormLogin) {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := c.ctx()
		defer cancel()
		customer, err := c.gw.LoginCustomer(ctx, email, password)
		return LoginResultMsg{Customer: customer, Err: err}
	}
}

// HandleLogin processes a login completion. On success the session store
// is the single writer of the new identity.
func (c *Controller) HandleLogin(msg LoginResultMsg) tea.Cmd {
	c.finish(FormLogin)

	if msg.Err != nil {
		return c.setStatus(LoginErrorMessage(msg.Err), MessageError)
	}

	if err := c.sessions.Login(session.FromCustomer(msg.Customer)); err != nil {
		return c.setStatus("Could not save session: "+err.Error(), MessageError)
	}

	c.mu.Lock()
	profile := msg.Customer
	c.profile = &profile
	c.mu.Unlock()
	return nil
}

// SubmitRegister validates the new customer locally and issues the
// registration call.
func (c *Controller) SubmitRegister(customer gateway.Customer) tea.Cmd {
	if strings.TrimSpace(customer.Name) == "" {
		return c.setStatus("Name is required", MessageError)
	}
	if customer.Email == "" || !strings.Contains(customer.Email, "@") {
		return c.setStatus("Please enter a valid email address", MessageError)
	}
	if len(customer.Password) < 6 {
		return c.setStatus("Password must be at least 6 characters", MessageError)
	}
	if customer.Phone <= 0 {
		return c.setStatus("Please enter a valid phone number", MessageError)
	}
	if !c.begin(FormRegister) {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := c.ctx()
		defer cancel()
		created, err := c.gw.RegisterCustomer(ctx, customer)
		return RegisterResultMsg{Customer: created, Err: err}
	}
}

// HandleRegister processes a registration completion.
func (c *Controller) HandleRegister(msg RegisterResultMsg) tea.Cmd {
	c.finish(FormRegister)

	if msg.Err != nil {
		return c.setStatus(OperationErrorMessage("Registration", msg.Err), MessageError)
	}
	return c.setStatus("Registration successful. Please login.", MessageSuccess)
}

// SubmitUpdateProfile issues a profile update for the signed-in customer.
// The numeric row ID is taken from the login record when the edit omits it.
func (c *Controller) SubmitUpdateProfile(edited gateway.Customer) tea.Cmd {
	if strings.TrimSpace(edited.Name) == "" {
		return c.setStatus("Name is required", MessageError)
	}
	if edited.Email == "" || !strings.Contains(edited.Email, "@") {
		return c.setStatus("Please enter a valid email address", MessageError)
	}

	c.mu.Lock()
	if edited.ID == 0 && c.profile != nil {
		edited.ID = c.profile.ID
	}
	c.mu.Unlock()
	if edited.ID == 0 {
		return c.setStatus("No profile loaded for this session", MessageError)
	}
	if !c.begin(FormProfile) {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := c.ctx()
		defer cancel()
		updated, err := c.gw.UpdateCustomer(ctx, edited)
		return ProfileUpdatedMsg{Customer: updated, Err: err}
	}
}

// HandleProfileUpdated processes a profile update completion. The session
// record is rewritten so the persisted identity matches the server.
func (c *Controller) HandleProfileUpdated(msg ProfileUpdatedMsg) tea.Cmd {
	c.finish(FormProfile)

	if msg.Err != nil {
		return c.setStatus(OperationErrorMessage("Profile update", msg.Err), MessageError)
	}

	c.mu.Lock()
	profile := msg.Customer
	c.profile = &profile
	c.mu.Unlock()

	if err := c.sessions.Login(session.FromCustomer(msg.Customer)); err != nil {
		return c.setStatus("Could not save session: "+err.Error(), MessageError)
	}
	return c.setStatus("Profile updated", MessageSuccess)
}

// =============================================================================
// DEPOSIT / WITHDRAW
// =============================================================================

// SubmitDeposit validates the raw amount and issues the deposit call.
// Nothing is sent to the network unless the form is idle, the amount is a
// positive number, and a session with an account number exists.
func (c *Controller) SubmitDeposit(rawAmount string) tea.Cmd {
	amount, cmd, ok := c.validAmount(rawAmount)
	if !ok {
		return cmd
	}
	accountNo, ok := c.accountNo()
	if !ok {
		return c.setStatus("No account is associated with this session", MessageError)
	}
	if !c.begin(FormDeposit) {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := c.ctx()
		defer cancel()
		balance, err := c.gw.Deposit(ctx, accountNo, amount)
		return DepositResultMsg{Amount: amount, Balance: balance, Err: err}
	}
}

// HandleDeposit processes a deposit completion. On success the mutation
// response is echoed optimistically, then resynchronizing reads refresh the
// authoritative balance and history.
func (c *Controller) HandleDeposit(msg DepositResultMsg) tea.Cmd {
	c.finish(FormDeposit)

	if msg.Err != nil {
		return c.setStatus(OperationErrorMessage("Deposit", msg.Err), MessageError)
	}

	c.echoBalance(msg.Balance)
	status := c.setStatus("Successfully deposited ₹"+util.FloatToString(msg.Amount), MessageSuccess)
	return tea.Batch(status, c.RefreshAccount(), c.RefreshHistory())
}

// SubmitWithdraw validates the raw amount and issues the withdrawal call.
// Insufficient funds are the server's call to make; the client sends the
// request and reflects the result.
func (c *Controller) SubmitWithdraw(rawAmount string) tea.Cmd {
	amount, cmd, ok := c.validAmount(rawAmount)
	if !ok {
		return cmd
	}
	accountNo, ok := c.accountNo()
	if !ok {
		return c.setStatus("No account is associated with this session", MessageError)
	}
	if !c.begin(FormWithdraw) {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := c.ctx()
		defer cancel()
		balance, err := c.gw.Withdraw(ctx, accountNo, amount)
		return WithdrawResultMsg{Amount: amount, Balance: balance, Err: err}
	}
}

// HandleWithdraw processes a withdrawal completion. On failure no local
// balance mutation occurs.
func (c *Controller) HandleWithdraw(msg WithdrawResultMsg) tea.Cmd {
	c.finish(FormWithdraw)

	if msg.Err != nil {
		return c.setStatus(OperationErrorMessage("Withdrawal", msg.Err), MessageError)
	}

	c.echoBalance(msg.Balance)
	status := c.setStatus("Successfully withdrawn ₹"+util.FloatToString(msg.Amount), MessageSuccess)
	return tea.Batch(status, c.RefreshAccount(), c.RefreshHistory())
}

// validAmount applies static amount validation. When invalid it returns
// the status command to run and ok=false.
func (c *Controller) validAmount(raw string) (amount float64, cmd tea.Cmd, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, c.setStatus("Amount is required", MessageError), false
	}
	amount, parsed := util.ParseAmount(raw)
	if !parsed || amount <= 0 {
		return 0, c.setStatus("Amount must be greater than 0", MessageError), false
	}
	return amount, nil, true
}

// echoBalance applies the mutation response to the cached mirror until the
// resynchronizing read lands.
func (c *Controller) echoBalance(balance float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.account != nil {
		c.account.Balance = balance
	}
}

// =============================================================================
// ADMIN BALANCE / INTEREST / NOTIFY
// =============================================================================

// SubmitUpdateBalance issues an admin balance update. New balance must be
// present and non-negative.
func (c *Controller) SubmitUpdateBalance(rawBalance string) tea.Cmd {
	rawBalance = strings.TrimSpace(rawBalance)
	if rawBalance == "" {
		return c.setStatus("New balance is required", MessageError)
	}
	newBalance, parsed := util.ParseAmount(rawBalance)
	if !parsed || newBalance < 0 {
		return c.setStatus("New balance must be 0 or greater", MessageError)
	}
	accountNo, ok := c.accountNo()
	if !ok {
		return c.setStatus("No account is associated with this session", MessageError)
	}
	if !c.begin(FormUpdateBalance) {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := c.ctx()
		defer cancel()
		account, err := c.gw.UpdateBalance(ctx, accountNo, newBalance)
		return UpdateBalanceResultMsg{NewBalance: newBalance, Account: account, Err: err}
	}
}

// HandleUpdateBalance processes a balance update completion.
func (c *Controller) HandleUpdateBalance(msg UpdateBalanceResultMsg) tea.Cmd {
	c.finish(FormUpdateBalance)

	if msg.Err != nil {
		return c.setStatus(OperationErrorMessage("Balance update", msg.Err), MessageError)
	}

	c.mu.Lock()
	account := msg.Account
	c.account = &account
	c.mu.Unlock()

	status := c.setStatus("Balance updated to ₹"+util.FloatToString(msg.NewBalance), MessageSuccess)
	return tea.Batch(status, c.RefreshHistory())
}

// SubmitInterest issues an interest calculation.
func (c *Controller) SubmitInterest(rawRate, rawYears string) tea.Cmd {
	rate, parsed := util.ParseAmount(strings.TrimSpace(rawRate))
	if !parsed || rate <= 0 {
		return c.setStatus("Rate must be greater than 0", MessageError)
	}
	yearsF, parsed := util.ParseAmount(strings.TrimSpace(rawYears))
	years := int(yearsF)
	if !parsed || years < 1 || float64(years) != yearsF {
		return c.setStatus("Years must be a whole number of 1 or more", MessageError)
	}
	accountNo, ok := c.accountNo()
	if !ok {
		return c.setStatus("No account is associated with this session", MessageError)
	}
	if !c.begin(FormInterest) {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := c.ctx()
		defer cancel()
		interest, err := c.gw.CalculateInterest(ctx, accountNo, rate, years)
		return InterestResultMsg{Interest: interest, Rate: rate, Years: years, Err: err}
	}
}

// HandleInterest processes an interest calculation completion. Interest is
// display-only; no local state changes.
func (c *Controller) HandleInterest(msg InterestResultMsg) tea.Cmd {
	c.finish(FormInterest)

	if msg.Err != nil {
		return c.setStatus(OperationErrorMessage("Interest calculation", msg.Err), MessageError)
	}
	return c.setStatus(
		"Calculated Interest: ₹"+util.FloatToString(msg.Interest)+
			" for "+util.IntToString(msg.Years)+" year(s) at "+util.FloatToString(msg.Rate)+"% rate",
		MessageSuccess)
}

// SubmitNotify issues a notification send.
func (c *Controller) SubmitNotify(message string) tea.Cmd {
	if len(strings.TrimSpace(message)) < 5 {
		return c.setStatus("Message must be at least 5 characters", MessageError)
	}
	accountNo, ok := c.accountNo()
	if !ok {
		return c.setStatus("No account is associated with this session", MessageError)
	}
	if !c.begin(FormNotify) {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := c.ctx()
		defer cancel()
		ack, err := c.gw.SendNotification(ctx, accountNo, message)
		return NotifyResultMsg{Ack: ack, Err: err}
	}
}

// HandleNotify processes a notification completion. The server's
// acknowledgement is shown verbatim.
func (c *Controller) HandleNotify(msg NotifyResultMsg) tea.Cmd {
	c.finish(FormNotify)

	if msg.Err != nil {
		return c.setStatus(OperationErrorMessage("Notification", msg.Err), MessageError)
	}
	return c.setStatus(msg.Ack, MessageSuccess)
}

// =============================================================================
// RESYNCHRONIZING READS
// =============================================================================

// RefreshAccount re-queries the authoritative account state. Reads carry no
// in-flight lock; they cannot double-commit anything.
func (c *Controller) RefreshAccount() tea.Cmd {
	accountNo, ok := c.accountNo()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := c.ctx()
		defer cancel()
		account, err := c.gw.GetAccount(ctx, accountNo)
		return AccountRefreshedMsg{Account: account, Err: err}
	}
}

// HandleAccountRefreshed stores the refreshed account mirror.
func (c *Controller) HandleAccountRefreshed(msg AccountRefreshedMsg) tea.Cmd {
	if msg.Err != nil {
		return c.setStatus("Error loading account details", MessageError)
	}

	c.mu.Lock()
	account := msg.Account
	c.account = &account
	c.mu.Unlock()
	return nil
}

// RefreshBalance re-queries only the balance, for views that do not need
// the full account record.
func (c *Controller) RefreshBalance() tea.Cmd {
	accountNo, ok := c.accountNo()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := c.ctx()
		defer cancel()
		balance, err := c.gw.CheckBalance(ctx, accountNo)
		return BalanceRefreshedMsg{Balance: balance, Err: err}
	}
}

// HandleBalanceRefreshed applies the polled balance to the cached mirror.
func (c *Controller) HandleBalanceRefreshed(msg BalanceRefreshedMsg) tea.Cmd {
	if msg.Err != nil {
		return c.setStatus("Error loading balance", MessageError)
	}
	c.echoBalance(msg.Balance)
	return nil
}

// RefreshHistory re-queries the transaction history.
func (c *Controller) RefreshHistory() tea.Cmd {
	accountNo, ok := c.accountNo()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := c.ctx()
		defer cancel()
		txns, err := c.gw.TransactionHistory(ctx, accountNo)
		return HistoryRefreshedMsg{Transactions: txns, Err: err}
	}
}

// HandleHistoryRefreshed stores the history sorted newest first.
func (c *Controller) HandleHistoryRefreshed(msg HistoryRefreshedMsg) tea.Cmd {
	if msg.Err != nil {
		return c.setStatus("Error loading transactions", MessageError)
	}

	txns := make([]gateway.Transaction, len(msg.Transactions))
	copy(txns, msg.Transactions)
	sort.Slice(txns, func(i, j int) bool {
		return txns[i].Timestamp.After(txns[j].Timestamp)
	})

	c.mu.Lock()
	c.history = txns
	c.mu.Unlock()
	return nil
}

// =============================================================================
// ADMIN ROSTER
// =============================================================================

// RefreshRoster loads the customer roster (admin operation).
func (c *Controller) RefreshRoster() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := c.ctx()
		defer cancel()
		customers, err := c.gw.ListCustomers(ctx)
		return RosterMsg{Customers: customers, Err: err}
	}
}

// HandleRoster stores the loaded roster.
func (c *Controller) HandleRoster(msg RosterMsg) tea.Cmd {
	if msg.Err != nil {
		return c.setStatus(OperationErrorMessage("Loading customers", msg.Err), MessageError)
	}

	c.mu.Lock()
	c.customers = msg.Customers
	c.mu.Unlock()
	return nil
}

// SubmitDeleteCustomer issues an admin customer delete.
func (c *Controller) SubmitDeleteCustomer(customerID string) tea.Cmd {
	if customerID == "" {
		return nil
	}
	if !c.begin(FormRoster) {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := c.ctx()
		defer cancel()
		err := c.gw.DeleteCustomer(ctx, customerID)
		return CustomerDeletedMsg{CustomerID: customerID, Err: err}
	}
}

// HandleCustomerDeleted processes a delete completion and reloads the
// roster from the server rather than patching the local copy.
func (c *Controller) HandleCustomerDeleted(msg CustomerDeletedMsg) tea.Cmd {
	c.finish(FormRoster)

	if msg.Err != nil {
		return c.setStatus(OperationErrorMessage("Delete", msg.Err), MessageError)
	}

	status := c.setStatus("Customer "+msg.CustomerID+" deleted", MessageSuccess)
	return tea.Batch(status, c.RefreshRoster())
}

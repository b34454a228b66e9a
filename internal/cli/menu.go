package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"outgo/internal/core"
	"outgo/internal/session"
	"outgo/internal/tracker"
	"outgo/internal/users"
)

// Menu drives the interactive text interface: an AUTH screen offering
// register/login and a HOME screen offering add/list/logout. All reads and
// writes go through the injected streams so tests can script a session.
type Menu struct {
	tracker *tracker.Tracker
	users   *users.Directory
	sess    *session.Session
	in      *bufio.Scanner
	rawIn   io.Reader
	out     io.Writer
}

func NewMenu(tr *tracker.Tracker, dir *users.Directory, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		tracker: tr,
		users:   dir,
		sess:    session.New(),
		in:      bufio.NewScanner(in),
		rawIn:   in,
		out:     out,
	}
}

// Run loops over the menu until the user exits or input ends.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.printHeader()

		var (
			done bool
			err  error
		)
		if m.sess.LoggedIn() {
			done, err = m.homeScreen(ctx)
		} else {
			done, err = m.authScreen(ctx)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (m *Menu) printHeader() {
	fmt.Fprintln(m.out, "\n"+strings.Repeat("=", 56))
	if m.sess.LoggedIn() {
		fmt.Fprintf(m.out, "  Expense Tracker  |  User: %s  |  State: %s\n", m.sess.User(), m.sess.State())
	} else {
		fmt.Fprintf(m.out, "  Expense Tracker  |  State: %s\n", m.sess.State())
	}
	fmt.Fprintln(m.out, strings.Repeat("=", 56))
}

func (m *Menu) authScreen(ctx context.Context) (bool, error) {
	fmt.Fprintln(m.out, "1) Register")
	fmt.Fprintln(m.out, "2) Login")
	fmt.Fprintln(m.out, "0) Exit")

	choice, err := m.ask("> ", false)
	if err != nil {
		return false, err
	}

	switch choice {
	case "1":
		username, err := m.ask("Username: ", false)
		if err != nil {
			return false, err
		}
		password, err := m.askPassword("Password: ")
		if err != nil {
			return false, err
		}
		if err := m.users.Register(ctx, username, password); err != nil {
			fmt.Fprintln(m.out, err.Error())
			return false, nil
		}
		m.sess.Login(username)
		fmt.Fprintln(m.out, "registered and logged in")
	case "2":
		username, err := m.ask("Username: ", false)
		if err != nil {
			return false, err
		}
		password, err := m.askPassword("Password: ")
		if err != nil {
			return false, err
		}
		ok, err := m.users.Authenticate(ctx, username, password)
		if err != nil {
			fmt.Fprintf(m.out, "Error: %v\n", err)
			return false, nil
		}
		if !ok {
			fmt.Fprintln(m.out, "invalid credentials")
			return false, nil
		}
		if err := m.users.ResolveStorage(ctx, username); err != nil {
			fmt.Fprintf(m.out, "Error: %v\n", err)
			return false, nil
		}
		m.sess.Login(username)
		fmt.Fprintln(m.out, "logged in")
	case "0":
		fmt.Fprintln(m.out, "Goodbye!")
		return true, nil
	default:
		fmt.Fprintln(m.out, "Invalid choice.")
	}
	return false, nil
}

func (m *Menu) homeScreen(ctx context.Context) (bool, error) {
	fmt.Fprintln(m.out, "1) Add expense")
	fmt.Fprintln(m.out, "2) List expenses")
	fmt.Fprintln(m.out, "3) Logout")
	fmt.Fprintln(m.out, "0) Exit")

	choice, err := m.ask("> ", false)
	if err != nil {
		return false, err
	}

	switch choice {
	case "1":
		if err := m.addExpense(ctx); err != nil {
			return false, err
		}
	case "2":
		if err := m.listExpenses(ctx); err != nil {
			return false, err
		}
	case "3":
		m.sess.Logout()
		fmt.Fprintln(m.out, "Logged out.")
	case "0":
		fmt.Fprintln(m.out, "Goodbye!")
		return true, nil
	default:
		fmt.Fprintln(m.out, "Invalid choice.")
	}
	return false, nil
}

func (m *Menu) addExpense(ctx context.Context) error {
	if settings, err := m.tracker.Settings(ctx, m.sess.User()); err == nil && len(settings.Categories) > 0 {
		fmt.Fprintf(m.out, "Suggested categories: %s\n", strings.Join(settings.Categories, ", "))
	}

	date, err := m.ask("Date (YYYY-MM-DD, empty=today): ", true)
	if err != nil {
		return err
	}
	amount, err := m.ask("Amount: ", false)
	if err != nil {
		return err
	}
	category, err := m.ask("Category: ", false)
	if err != nil {
		return err
	}
	description, err := m.ask("Description (optional): ", true)
	if err != nil {
		return err
	}
	method, err := m.ask("Payment method (optional): ", true)
	if err != nil {
		return err
	}
	tags, err := m.ask("Tags separated by commas (optional): ", true)
	if err != nil {
		return err
	}

	in := tracker.AddExpenseInput{
		Amount:        amount,
		Category:      category,
		Description:   description,
		PaymentMethod: method,
		Tags:          tags,
	}
	if date != "" {
		in.Date = &date
	}

	id, err := m.tracker.AddExpense(ctx, m.sess.User(), in)
	if err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return nil
	}
	fmt.Fprintf(m.out, "Added expense with id: %s\n", id)
	return nil
}

func (m *Menu) listExpenses(ctx context.Context) error {
	var filter core.Filter

	month, err := m.ask("Month filter (YYYY-MM, empty=all): ", true)
	if err != nil {
		return err
	}
	if month != "" {
		from, to, err := monthRange(month)
		if err != nil {
			fmt.Fprintf(m.out, "Error: %v\n", err)
			return nil
		}
		filter.From, filter.To = from, to
	} else {
		if filter.From, err = m.ask("From date (YYYY-MM-DD, empty=none): ", true); err != nil {
			return err
		}
		if filter.To, err = m.ask("To date (YYYY-MM-DD, empty=none): ", true); err != nil {
			return err
		}
	}
	if filter.Category, err = m.ask("Category filter (empty=all): ", true); err != nil {
		return err
	}

	items, err := m.tracker.ListExpenses(ctx, m.sess.User(), filter)
	if err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return nil
	}
	if len(items) == 0 {
		fmt.Fprintln(m.out, "(no records)")
		return nil
	}

	currency := ""
	if settings, err := m.tracker.Settings(ctx, m.sess.User()); err == nil {
		currency = settings.Currency
	}

	amountHeader := "Amount"
	if currency != "" {
		amountHeader = fmt.Sprintf("Amount (%s)", currency)
	}
	fmt.Fprintf(m.out, "%-12s %12s  %-14s %s\n", "Date", amountHeader, "Category", "Description")
	fmt.Fprintln(m.out, strings.Repeat("-", 56))
	for _, e := range items {
		fmt.Fprintf(m.out, "%-12s %12.2f  %-14s %s\n", e.Date, e.Amount, e.Category, e.Description)
	}
	fmt.Fprintln(m.out, strings.Repeat("-", 56))
	fmt.Fprintf(m.out, "Total records: %d\n", len(items))
	return nil
}

// monthRange expands YYYY-MM to the first and last day of that month.
func monthRange(s string) (string, string, error) {
	first, err := time.Parse("2006-01", s)
	if err != nil {
		return "", "", fmt.Errorf("month must be in format YYYY-MM")
	}
	last := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	return first.Format(core.DateLayout), last.Format(core.DateLayout), nil
}

func (m *Menu) ask(prompt string, allowEmpty bool) (string, error) {
	for {
		fmt.Fprint(m.out, prompt)
		if !m.in.Scan() {
			if err := m.in.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		val := strings.TrimSpace(m.in.Text())
		if val != "" || allowEmpty {
			return val, nil
		}
		fmt.Fprintln(m.out, "Input cannot be empty.")
	}
}

// askPassword reads a password without echo when stdin is a terminal and
// falls back to a plain line read otherwise (tests, pipes).
func (m *Menu) askPassword(prompt string) (string, error) {
	if f, ok := m.rawIn.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(m.out, prompt)
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(m.out)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	return m.ask(prompt, false)
}

package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldUser      = "user"
	FieldExpenseID = "expense_id"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldDate      = "date"
	FieldBackend   = "backend"
	FieldOperation = "operation"
	FieldPath      = "path"
	FieldCount     = "count"
	FieldError     = "error"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentTracker = "tracker"
	ComponentStore   = "store"
	ComponentUsers   = "users"
	ComponentCLI     = "cli"
	ComponentBackend = "backend"
	ComponentExport  = "export"
)

// Operations defines standard operation names
const (
	OpAdd      = "add"
	OpList     = "list"
	OpLoad     = "load"
	OpSave     = "save"
	OpRegister = "register"
	OpLogin    = "login"
	OpExport   = "export"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithUser adds the username field
func (f LogFields) WithUser(user string) LogFields {
	f[FieldUser] = user
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithExpense adds expense-related fields
func (f LogFields) WithExpense(id, category string, amount float64) LogFields {
	f[FieldExpenseID] = id
	f[FieldCategory] = category
	f[FieldAmount] = amount
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}

package journal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/closebooks/internal/model"
)

// Rule violations reported by Validate. Each ValidationError wraps one.
var (
	ErrUnknownAccount   = errors.New("unknown account")
	ErrUnbalanced       = errors.New("debits do not equal credits")
	ErrNegativeAmount   = errors.New("negative amount")
	ErrTooFewEntries    = errors.New("transaction needs at least two entries")
	ErrInvalidEntryType = errors.New("entry type must be debit or credit")
	ErrMissingField     = errors.New("required field missing")
)

// ValidationError describes a single rule violation.
type ValidationError struct {
	Rule  string
	Field string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Rule, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Rule, e.Field, e.Err)
}

func (e ValidationError) Unwrap() error { return e.Err }

// ValidationErrors collects every violation found in one pass.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes each violation to errors.Is and errors.As.
func (ve ValidationErrors) Unwrap() []error {
	errs := make([]error, len(ve))
	for i, e := range ve {
		errs[i] = e
	}
	return errs
}

// AccountChecker tests whether an account code exists in the chart.
type AccountChecker interface {
	Exists(code string) bool
}

// EntryParams is one requested posting.
type EntryParams struct {
	AccountCode string          `validate:"required"`
	Type        model.EntryType `validate:"required,oneof=debit credit"`
	Amount      decimal.Decimal
}

// TransactionParams holds the fields for recording a transaction.
type TransactionParams struct {
	ID          string
	Date        time.Time
	Description string        `validate:"required,max=500"`
	Entries     []EntryParams `validate:"required,min=2,dive"`
	Posted      *bool
}

var validate = validator.New()

// Validate checks a transaction before it is appended: shape, known
// accounts, non-negative amounts and equal debit and credit totals.
func Validate(params TransactionParams, accounts AccountChecker) ValidationErrors {
	var errs ValidationErrors

	if params.Date.IsZero() {
		errs = append(errs, ValidationError{Rule: "required", Field: "Date", Err: ErrMissingField})
	}

	if err := validate.Struct(params); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return append(errs, ValidationError{Rule: "shape", Err: err})
		}
		for _, fe := range fieldErrs {
			errs = append(errs, fromFieldError(fe))
		}
	}

	debit, credit := decimal.Zero, decimal.Zero
	for i, e := range params.Entries {
		field := fmt.Sprintf("Entries[%d]", i)
		if e.Amount.IsNegative() {
			errs = append(errs, ValidationError{
				Rule:  "amount",
				Field: field + ".Amount",
				Err:   fmt.Errorf("%w: %s", ErrNegativeAmount, e.Amount),
			})
		}
		if e.AccountCode != "" && !accounts.Exists(e.AccountCode) {
			errs = append(errs, ValidationError{
				Rule:  "account",
				Field: field + ".AccountCode",
				Err:   fmt.Errorf("%w %s", ErrUnknownAccount, e.AccountCode),
			})
		}
		switch e.Type {
		case model.Debit:
			debit = debit.Add(e.Amount)
		case model.Credit:
			credit = credit.Add(e.Amount)
		}
	}

	if !debit.Equal(credit) {
		errs = append(errs, ValidationError{
			Rule: "balance",
			Err:  fmt.Errorf("%w: debits %s, credits %s", ErrUnbalanced, debit, credit),
		})
	}
	return errs
}

// ValidateTransaction validates a decoded log record.
func ValidateTransaction(txn model.Transaction, accounts AccountChecker) ValidationErrors {
	return Validate(ParamsFromTransaction(txn), accounts)
}

// ParamsFromTransaction converts a transaction back to recording params.
func ParamsFromTransaction(txn model.Transaction) TransactionParams {
	entries := make([]EntryParams, len(txn.Entries))
	for i, e := range txn.Entries {
		entries[i] = EntryParams{AccountCode: e.AccountCode, Type: e.Type, Amount: e.Amount}
	}
	return TransactionParams{
		ID:          txn.ID,
		Date:        txn.Date,
		Description: txn.Description,
		Entries:     entries,
		Posted:      txn.Posted,
	}
}

func fromFieldError(fe validator.FieldError) ValidationError {
	field := strings.TrimPrefix(fe.Namespace(), "TransactionParams.")
	ve := ValidationError{Rule: fe.Tag(), Field: field}
	switch {
	case fe.Field() == "Entries":
		ve.Err = ErrTooFewEntries
	case fe.StructField() == "Type":
		ve.Err = fmt.Errorf("%w: %q", ErrInvalidEntryType, fe.Value())
	case fe.Tag() == "required":
		ve.Err = ErrMissingField
	default:
		ve.Err = fmt.Errorf("failed %s=%s", fe.Tag(), fe.Param())
	}
	return ve
}

package models

// NotFound is the value reported for a field whose pattern did not match.
const NotFound = "Not Found"

// FieldName identifies one of the billing fields extracted from a statement.
type FieldName string

const (
	FieldCardNumber      FieldName = "card_number"
	FieldDueDate         FieldName = "due_date"
	FieldTotalDue        FieldName = "total_due"
	FieldStatementPeriod FieldName = "statement_period"
)

// Fields lists every extracted field in report order.
var Fields = []FieldName{
	FieldCardNumber,
	FieldDueDate,
	FieldTotalDue,
	FieldStatementPeriod,
}

// Method records how the statement text was obtained.
type Method string

const (
	MethodTextLayer Method = "text-layer"
	MethodOCR       Method = "ocr"
)

// ExtractionResult holds the fields extracted from one statement.
type ExtractionResult struct {
	Issuer          string `json:"issuer"`
	CardNumber      string `json:"card_number"`
	DueDate         string `json:"due_date"`
	TotalDue        string `json:"total_due"`
	StatementPeriod string `json:"statement_period"`
}

// NewExtractionResult returns a result for issuer with every field unresolved.
func NewExtractionResult(issuer string) ExtractionResult {
	return ExtractionResult{
		Issuer:          issuer,
		CardNumber:      NotFound,
		DueDate:         NotFound,
		TotalDue:        NotFound,
		StatementPeriod: NotFound,
	}
}

// Get returns the value of a field.
func (r ExtractionResult) Get(field FieldName) string {
	switch field {
	case FieldCardNumber:
		return r.CardNumber
	case FieldDueDate:
		return r.DueDate
	case FieldTotalDue:
		return r.TotalDue
	case FieldStatementPeriod:
		return r.StatementPeriod
	}
	return ""
}

// Set assigns the value of a field. Unknown fields are ignored.
func (r *ExtractionResult) Set(field FieldName, value string) {
	switch field {
	case FieldCardNumber:
		r.CardNumber = value
	case FieldDueDate:
		r.DueDate = value
	case FieldTotalDue:
		r.TotalDue = value
	case FieldStatementPeriod:
		r.StatementPeriod = value
	}
}

// Missing returns the fields that were not found, in report order.
func (r ExtractionResult) Missing() []FieldName {
	var missing []FieldName
	for _, f := range Fields {
		if r.Get(f) == NotFound {
			missing = append(missing, f)
		}
	}
	return missing
}

// StatementReport is one row of a batch report produced by the CLI.
type StatementReport struct {
	File   string            `json:"file"`
	Method Method            `json:"method,omitempty"`
	Result *ExtractionResult `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}

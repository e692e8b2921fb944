package statement

import (
	"fmt"
	"io"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/4rnv/safebalance/internal/models"
)

// entryDateLayout is the timestamp format used inside statement exports
const entryDateLayout = "2006-01-02T15:04:05"

// Parser turns uploaded bank-statement XML into transactions. The expected
// document shape is:
//
//	<Statement>
//	  <Entries>
//	    <Entry>
//	      <Date>2025-03-08T14:05:00</Date>
//	      <Amount>450.50</Amount>
//	      <Type>CR</Type>
//	      <Narration>UPI/swiggy payout</Narration>
//	    </Entry>
//	  </Entries>
//	</Statement>
//
// CR entries become deposits, DR entries withdrawals. Amounts are rounded
// to two decimal places.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads a statement document and returns the transactions it holds,
// all tagged with the given account ID. Entries with a missing date,
// amount or type fail the whole import so a partial statement is never
// booked.
func (p *Parser) Parse(r io.Reader, acctID string) ([]models.Transaction, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to parse statement XML: %v", err)
	}

	entries := doc.FindElements("//Entries/Entry")
	if len(entries) == 0 {
		return nil, fmt.Errorf("no entries found in statement")
	}

	txs := make([]models.Transaction, 0, len(entries))
	for i, entry := range entries {
		tx, err := parseEntry(entry, acctID)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %v", i+1, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func parseEntry(entry *etree.Element, acctID string) (models.Transaction, error) {
	dateElement := entry.FindElement("./Date")
	if dateElement == nil {
		return models.Transaction{}, fmt.Errorf("date element not found")
	}
	timestamp, err := time.Parse(entryDateLayout, dateElement.Text())
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to parse date: %v", err)
	}

	amountElement := entry.FindElement("./Amount")
	if amountElement == nil {
		return models.Transaction{}, fmt.Errorf("amount element not found")
	}
	amount, err := decimal.NewFromString(amountElement.Text())
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to parse amount: %v", err)
	}
	if amount.IsNegative() || amount.IsZero() {
		return models.Transaction{}, fmt.Errorf("amount must be positive, got %s", amount)
	}

	typeElement := entry.FindElement("./Type")
	if typeElement == nil {
		return models.Transaction{}, fmt.Errorf("type element not found")
	}
	var txType models.TransactionType
	switch typeElement.Text() {
	case "CR":
		txType = models.TransactionDeposit
	case "DR":
		txType = models.TransactionWithdrawal
	default:
		return models.Transaction{}, fmt.Errorf("unknown entry type %q", typeElement.Text())
	}

	var details string
	if narration := entry.FindElement("./Narration"); narration != nil {
		details = narration.Text()
	}

	value, _ := amount.Round(2).Float64()
	return models.Transaction{
		AccountID: acctID,
		Amount:    value,
		Type:      txType,
		Details:   details,
		Source:    models.SourceBankStatement,
		Timestamp: timestamp.UTC(),
	}, nil
}

package statement

import (
	"strings"
	"testing"
	"time"

	"github.com/4rnv/safebalance/internal/models"
)

const sampleStatement = `<?xml version="1.0" encoding="utf-8"?>
<Statement>
  <Entries>
    <Entry>
      <Date>2025-03-08T14:05:00</Date>
      <Amount>450.505</Amount>
      <Type>CR</Type>
      <Narration>UPI/swiggy payout</Narration>
    </Entry>
    <Entry>
      <Date>2025-03-09T09:30:00</Date>
      <Amount>120</Amount>
      <Type>DR</Type>
      <Narration>Grocery store</Narration>
    </Entry>
  </Entries>
</Statement>`

func TestParseStatement(t *testing.T) {
	t.Parallel()

	txs, err := NewParser().Parse(strings.NewReader(sampleStatement), "acct-1")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txs))
	}

	deposit := txs[0]
	if deposit.Type != models.TransactionDeposit {
		t.Errorf("first entry type = %s, want deposit", deposit.Type)
	}
	if deposit.Amount != 450.51 {
		t.Errorf("first entry amount = %v, want 450.51 after rounding", deposit.Amount)
	}
	if deposit.AccountID != "acct-1" {
		t.Errorf("first entry account = %s, want acct-1", deposit.AccountID)
	}
	if deposit.Source != models.SourceBankStatement {
		t.Errorf("first entry source = %s, want bank statement", deposit.Source)
	}
	want := time.Date(2025, time.March, 8, 14, 5, 0, 0, time.UTC)
	if !deposit.Timestamp.Equal(want) {
		t.Errorf("first entry timestamp = %v, want %v", deposit.Timestamp, want)
	}

	withdrawal := txs[1]
	if withdrawal.Type != models.TransactionWithdrawal {
		t.Errorf("second entry type = %s, want withdrawal", withdrawal.Type)
	}
	if withdrawal.Details != "Grocery store" {
		t.Errorf("second entry details = %q", withdrawal.Details)
	}
}

func TestParseStatementRejectsBadEntries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
	}{
		{"not xml", "not xml at all <"},
		{"no entries", `<Statement><Entries></Entries></Statement>`},
		{"missing amount", `<Statement><Entries><Entry><Date>2025-03-08T14:05:00</Date><Type>CR</Type></Entry></Entries></Statement>`},
		{"bad date", `<Statement><Entries><Entry><Date>08/03/2025</Date><Amount>10</Amount><Type>CR</Type></Entry></Entries></Statement>`},
		{"unknown type", `<Statement><Entries><Entry><Date>2025-03-08T14:05:00</Date><Amount>10</Amount><Type>XX</Type></Entry></Entries></Statement>`},
		{"negative amount", `<Statement><Entries><Entry><Date>2025-03-08T14:05:00</Date><Amount>-10</Amount><Type>CR</Type></Entry></Entries></Statement>`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewParser().Parse(strings.NewReader(tc.body), "acct-1"); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestParseStatementFailsWholeImport(t *testing.T) {
	t.Parallel()

	// One good entry plus one broken entry must book nothing.
	body := `<Statement><Entries>
	  <Entry><Date>2025-03-08T14:05:00</Date><Amount>10</Amount><Type>CR</Type></Entry>
	  <Entry><Date>2025-03-09T10:00:00</Date><Amount>abc</Amount><Type>CR</Type></Entry>
	</Entries></Statement>`

	if _, err := NewParser().Parse(strings.NewReader(body), "acct-1"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

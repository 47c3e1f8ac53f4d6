package cmd

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sahilm/fuzzy"
)

var keysData = map[string]string{
	"extdata/host/web1.yaml": "role: frontend\nntp_servers: [a, b]\n",
	"extdata/common.csv":     "role,default\nsnmp_contact,ops\nsnmp_location,ams1\n",
}

func TestKeysRun(t *testing.T) {
	tgt, out := newTarget(t, OutputText, keysData)

	err := (&Keys{}).Run(WithTarget(context.Background(), tgt))
	if err != nil {
		t.Fatalf("Keys.Run() error = %v", err)
	}

	want := "role\nntp_servers\nsnmp_contact\nsnmp_location\n"
	if got := out.String(); got != want {
		t.Errorf("Keys.Run() = %q, want %q", got, want)
	}
}

func TestKeysRunPattern(t *testing.T) {
	tgt, out := newTarget(t, OutputJSON, keysData)

	err := (&Keys{Pattern: "snmp"}).Run(WithTarget(context.Background(), tgt))
	if err != nil {
		t.Fatalf("Keys.Run() error = %v", err)
	}

	var got []string
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}

	if len(got) != 2 {
		t.Fatalf("Keys.Run() = %q, want both snmp keys", got)
	}

	for _, k := range got {
		if !strings.HasPrefix(k, "snmp_") {
			t.Errorf("unexpected match %q", k)
		}
	}
}

func TestKeysRunNoKeys(t *testing.T) {
	tgt, out := newTarget(t, OutputJSON, nil)

	err := (&Keys{}).Run(WithTarget(context.Background(), tgt))
	if err != nil {
		t.Fatalf("Keys.Run() error = %v", err)
	}

	if got := strings.TrimSpace(out.String()); got != "[]" {
		t.Errorf("Keys.Run() = %q, want []", got)
	}
}

func TestHighlight(t *testing.T) {
	matches := fuzzy.Find("sc", []string{"snmp_contact"})
	if len(matches) != 1 {
		t.Fatalf("fuzzy.Find() = %d matches, want 1", len(matches))
	}

	if got := plain(highlight(matches[0])); got != "snmp_contact" {
		t.Errorf("highlight() = %q, want %q", got, "snmp_contact")
	}
}

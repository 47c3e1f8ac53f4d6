package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/ardnew/extlookup/lookup"
)

var lookupData = map[string]string{
	"extdata/common.csv": "snmp_contact,ops\n" +
		"client_trusted_ips,192.168.1.130,192.168.10.0/24\n" +
		"motd,hello from %{hostname}\n" +
		"quoted,\"a,b\",c\n",
	"extdata/host/web1.yaml": "key:\n  v1: \"%{foobar}\"\n  v2: plain\n",
}

func TestLookupRun(t *testing.T) {
	tests := []struct {
		name   string
		output Output
		args   []string
		want   string
	}{
		{"scalar", OutputText, []string{"snmp_contact"}, "ops\n"},
		{"interpolated", OutputText, []string{"motd"}, "hello from web1\n"},
		{"list", OutputText, []string{"client_trusted_ips"}, "192.168.1.130\n192.168.10.0/24\n"},
		{"list with comma", OutputText, []string{"quoted"}, "a,b\nc\n"},
		{"map", OutputText, []string{"key"}, "v1: myfoobar\nv2: plain\n"},
		{"default", OutputText, []string{"missing", "fallback"}, "fallback\n"},
		{"yaml scalar", OutputYAML, []string{"snmp_contact"}, "ops\n"},
		{"json list", OutputJSON, []string{"client_trusted_ips"}, "[\n  \"192.168.1.130\",\n  \"192.168.10.0/24\"\n]\n"},
		{"json map", OutputJSON, []string{"key"}, "{\n  \"v1\": \"myfoobar\",\n  \"v2\": \"plain\"\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tgt, out := newTarget(t, tt.output, lookupData)
			ctx := WithTarget(context.Background(), tgt)

			err := (&Lookup{Args: tt.args}).Run(ctx)
			if err != nil {
				t.Fatalf("Lookup.Run() error = %v", err)
			}

			if got := out.String(); got != tt.want {
				t.Errorf("Lookup.Run() output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLookupRunNotFound(t *testing.T) {
	tgt, out := newTarget(t, OutputText, lookupData)
	ctx := WithTarget(context.Background(), tgt)

	err := (&Lookup{Args: []string{"snmp_cont"}}).Run(ctx)
	if !errors.Is(err, ErrLookup) || !errors.Is(err, lookup.ErrNotFound) {
		t.Fatalf("Lookup.Run() error = %v, want %v", err, lookup.ErrNotFound)
	}

	var ee *lookup.Error
	if !errors.As(err, &ee) {
		t.Fatalf("Lookup.Run() error type = %T", err)
	}

	similar, ok := ee.Attr("similar")
	if !ok || similar.String() != "snmp_contact" {
		t.Errorf("similar = %q (%t), want %q", similar.String(), ok, "snmp_contact")
	}

	if out.Len() != 0 {
		t.Errorf("Lookup.Run() wrote %q on failure", out.String())
	}
}

func TestLookupRunArity(t *testing.T) {
	tgt, _ := newTarget(t, OutputText, lookupData)
	ctx := WithTarget(context.Background(), tgt)

	err := (&Lookup{Args: []string{"a", "b", "c", "d"}}).Run(ctx)
	if !errors.Is(err, lookup.ErrArity) {
		t.Errorf("Lookup.Run() error = %v, want %v", err, lookup.ErrArity)
	}
}

func TestLookupRunNoTarget(t *testing.T) {
	err := (&Lookup{Args: []string{"k"}}).Run(context.Background())
	if !errors.Is(err, ErrNoTarget) {
		t.Errorf("Lookup.Run() error = %v, want %v", err, ErrNoTarget)
	}
}

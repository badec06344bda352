package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	pkgtypes "github.com/vietdv277/cwput/pkg/types"
)

// Encode writes v as indented JSON or YAML
func Encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

const rule = "───────────────────────────────"

// PrintPutResult writes a human-readable acknowledgment
func PrintPutResult(w io.Writer, group, stream string, result pkgtypes.PutResult) {
	fmt.Fprintln(w, HeaderStyle.Render("Log event accepted"))
	fmt.Fprintln(w, MutedStyle.Render(rule))
	fmt.Fprintf(w, "  Group:      %s\n", NameStyle.Render(group))
	fmt.Fprintf(w, "  Stream:     %s\n", NameStyle.Render(stream))
	if result.NextSequenceToken != "" {
		fmt.Fprintf(w, "  Next token: %s\n", TokenStyle.Render(result.NextSequenceToken))
	}
	if result.RequestID != "" {
		fmt.Fprintf(w, "  Request ID: %s\n", MutedStyle.Render(result.RequestID))
	}
	if info := result.RejectedLogEventsInfo; info != nil {
		fmt.Fprintln(w, WarnStyle.Render("  Rejected events:"))
		printIndex(w, "too new from", info.TooNewLogEventStartIndex)
		printIndex(w, "too old up to", info.TooOldLogEventEndIndex)
		printIndex(w, "expired up to", info.ExpiredLogEventEndIndex)
	}
}

func printIndex(w io.Writer, label string, idx *int32) {
	if idx == nil {
		return
	}
	fmt.Fprintf(w, "    %s index %d\n", label, *idx)
}

// PrintIdentity writes the caller identity
func PrintIdentity(w io.Writer, identity *pkgtypes.CallerIdentity) {
	fmt.Fprintln(w, HeaderStyle.Render("AWS Identity"))
	fmt.Fprintln(w, MutedStyle.Render(rule))
	fmt.Fprintf(w, "  Account: %s\n", identity.Account)
	fmt.Fprintf(w, "  UserID:  %s\n", identity.UserID)
	fmt.Fprintf(w, "  ARN:     %s\n", MutedStyle.Render(identity.Arn))
}

// PrintCredentials writes how each credential setting was resolved and the
// profiles found in the shared files
func PrintCredentials(w io.Writer, profile string, statuses []pkgtypes.CredentialStatus, profiles []pkgtypes.AWSProfile) {
	fmt.Fprintln(w, HeaderStyle.Render("Credentials"))
	fmt.Fprintln(w, MutedStyle.Render(rule))
	fmt.Fprintf(w, "  Profile:    %s\n", NameStyle.Render(profile))
	for _, s := range statuses {
		label := padRight(s.Field+":", 11)
		if !s.Resolved {
			fmt.Fprintf(w, "  %s %s\n", label, WarnStyle.Render("✗ unresolved"))
			continue
		}
		fmt.Fprintf(w, "  %s %s %s\n", label, OKStyle.Render(s.Value), MutedStyle.Render("("+s.Source+")"))
	}

	if len(profiles) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, HeaderStyle.Render("Profiles"))
	fmt.Fprintln(w, MutedStyle.Render(rule))
	for _, p := range profiles {
		marker := "  "
		if p.Name == profile {
			marker = OKStyle.Render("▸ ")
		}
		region := p.Region
		if region == "" {
			region = "-"
		}
		fmt.Fprintf(w, "  %s%s %s\n", marker, NameStyle.Render(padRight(p.Name, 20)), MutedStyle.Render(region))
	}
}

package theirstack

import (
	"math"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/honeycarbs/job-discovery/internal/domain"
)

const (
	maxDescriptionRunes = 200
	ellipsis            = "..."
)

// offerNamespace scopes synthetic offer ids so they never collide with other SHA1 uuids
var offerNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://api.theirstack.com/v1/jobs"))

var salaryPrinter = message.NewPrinter(language.Spanish)

// modalityTerms is checked in order; the first modality with a matching term wins
var modalityTerms = []struct {
	modality domain.Modality
	terms    []string
}{
	{domain.ModalityRemote, []string{"remote", "remoto", "teletrabajo"}},
	{domain.ModalityHybrid, []string{"hybrid", "híbrido", "hibrido"}},
	{domain.ModalityOnsite, []string{"presencial", "on-site", "onsite"}},
}

var (
	markdownHeading  = regexp.MustCompile(`(?m)^[ \t]*#{1,6}[ \t]+`)
	markdownStripper = strings.NewReplacer("**", "", "__", "", "~~", "", "*", "", "`", "")
)

// formatSalary renders a numeric range as "45.000 - 60.000 EUR".
// ok is false when neither bound is a positive number.
func formatSalary(minValue, maxValue flexFloat, currency string) (string, bool) {
	var parts []string
	for _, v := range []flexFloat{minValue, maxValue} {
		if v.ok && v.value > 0 && representable(v.value) {
			parts = append(parts, salaryPrinter.Sprintf("%d", int64(math.Round(v.value))))
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	if len(parts) == 2 && parts[0] == parts[1] {
		parts = parts[:1]
	}

	out := strings.Join(parts, " - ")
	if currency = strings.ToUpper(strings.TrimSpace(currency)); currency != "" {
		out += " " + currency
	}
	return out, true
}

// inferModality searches title and description before falling back to provider flags
func inferModality(title, description string, remoteFlag, hybridFlag bool) domain.Modality {
	haystack := strings.ToLower(title + " " + description)
	for _, group := range modalityTerms {
		for _, term := range group.terms {
			if strings.Contains(haystack, term) {
				return group.modality
			}
		}
	}

	switch {
	case remoteFlag:
		return domain.ModalityRemote
	case hybridFlag:
		return domain.ModalityHybrid
	default:
		return domain.ModalityOnsite
	}
}

// plainText strips HTML and markdown markup and collapses whitespace
func plainText(s string) string {
	if strings.ContainsAny(s, "<&") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			var b strings.Builder
			collectText(doc.Selection, &b)
			s = b.String()
		}
	}
	s = markdownHeading.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(markdownStripper.Replace(s)), " ")
}

func collectText(sel *goquery.Selection, b *strings.Builder) {
	sel.Contents().Each(func(_ int, node *goquery.Selection) {
		switch goquery.NodeName(node) {
		case "#text":
			b.WriteString(node.Text())
			b.WriteByte(' ')
		case "script", "style", "#comment":
		default:
			collectText(node, b)
		}
	})
}

// truncateRunes caps s at n runes, appending an ellipsis only when something was cut
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:n]), " .,;:") + ellipsis
}

// applyURL returns raw when it is an absolute http(s) URL
func applyURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	return raw, true
}

// syntheticID derives a stable id from the listing identity fields
func syntheticID(title, company, link string) string {
	key := strings.Join([]string{title, company, link}, "\x00")
	return uuid.NewSHA1(offerNamespace, []byte(key)).String()
}

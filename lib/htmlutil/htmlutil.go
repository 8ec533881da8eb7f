package htmlutil

import (
	"bytes"
	"context"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("tnfirefly.lib.htmlutil")

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText trims and collapses whitespace, dropping the
// non-printable junk that CMS-rendered pages tend to embed.
func CleanText(s string) string {
	s = removeNonPrintable(s)
	s = strings.Trim(s, " \t\n")
	return innerWhitespace.ReplaceAllString(s, " ")
}

type Anchor struct {
	Name string
	Href string
}

func GetAnchors(ctx context.Context, sel *goquery.Selection) []Anchor {
	ctx, span := tracer.Start(ctx, "GetAnchors")
	defer span.End()

	anchors := []Anchor{}
	for _, n := range sel.Nodes {
		href := ""
		for _, a := range n.Attr {
			if a.Key == "href" {
				href = a.Val
				break
			}
		}

		link, err := url.Parse(href)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "got error while parsing url")
			continue
		}

		name := CleanText(GetText(n))
		linkStr := link.String()
		anchors = append(anchors, Anchor{
			Name: name,
			Href: linkStr,
		})
		span.AddEvent("anchor", trace.WithAttributes(
			attribute.String("name", name),
			attribute.String("url", linkStr),
		))
	}

	return anchors
}

var headingTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// PrecedingHeading walks backwards from the node through preceding
// siblings (and up through parents) until it finds a section heading,
// giving up after maxSteps nodes. Returns "" when no heading is within
// reach, callers treat that as "no context" rather than an error.
func PrecedingHeading(node *html.Node, maxSteps int) string {
	steps := 0
	current := node
	for current != nil && steps < maxSteps {
		prev := current.PrevSibling
		for prev != nil && steps < maxSteps {
			steps++
			if prev.Type == html.ElementNode && headingTags[prev.Data] {
				return CleanText(GetText(prev))
			}
			// a heading nested at the end of a preceding container
			// still counts as the nearest landmark
			if prev.Type == html.ElementNode {
				if h := lastHeadingWithin(prev); h != nil {
					return CleanText(GetText(h))
				}
			}
			prev = prev.PrevSibling
		}
		current = current.Parent
	}
	return ""
}

func lastHeadingWithin(node *html.Node) *html.Node {
	for child := node.LastChild; child != nil; child = child.PrevSibling {
		if child.Type == html.ElementNode && headingTags[child.Data] {
			return child
		}
		if found := lastHeadingWithin(child); found != nil {
			return found
		}
	}
	return nil
}

// TableCells extracts a table's rows as cleaned cell text, one slice
// per <tr>, reading both <td> and <th> cells.
func TableCells(table *goquery.Selection) [][]string {
	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, CleanText(cell.Text()))
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})
	return rows
}

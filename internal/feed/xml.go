package feed

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// checkXML runs a strict token pass over body and returns the first
// well-formedness error: undeclared entities, a bare '&', mismatched tags or
// a truncated document.
func checkXML(body []byte) error {
	d := xml.NewDecoder(bytes.NewReader(body))
	d.CharsetReader = charset.NewReaderLabel
	for {
		_, err := d.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// salvageLinks recovers item links from a feed gofeed rejected. The decoder
// runs in non-strict mode and stops at the first unrecoverable error; links
// read up to that point are kept, including an unterminated last item's.
// RSS links are element text, Atom links the href of an alternate link.
func salvageLinks(body []byte) []string {
	d := xml.NewDecoder(bytes.NewReader(body))
	d.Strict = false
	d.AutoClose = xml.HTMLAutoClose
	d.Entity = xml.HTMLEntity
	d.CharsetReader = charset.NewReaderLabel

	links := []string{}
	var (
		inItem, inLink bool
		link           string
		text           strings.Builder
	)
	for {
		tok, err := d.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch strings.ToLower(t.Name.Local) {
			case "item", "entry":
				inItem, link = true, ""
			case "link":
				if !inItem {
					continue
				}
				if href := atomHref(t); href != "" && link == "" {
					link = href
				}
				inLink = true
				text.Reset()
			}
		case xml.CharData:
			if inLink {
				text.Write(t)
			}
		case xml.EndElement:
			switch strings.ToLower(t.Name.Local) {
			case "link":
				if inLink && link == "" {
					link = strings.TrimSpace(text.String())
				}
				inLink = false
			case "item", "entry":
				if inItem && link != "" {
					links = append(links, link)
				}
				inItem, link = false, ""
			}
		}
	}

	if inItem && link != "" {
		links = append(links, link)
	}
	return links
}

func atomHref(t xml.StartElement) string {
	var href, rel string
	for _, a := range t.Attr {
		switch a.Name.Local {
		case "href":
			href = strings.TrimSpace(a.Value)
		case "rel":
			rel = a.Value
		}
	}
	if rel != "" && rel != "alternate" {
		return ""
	}
	return href
}

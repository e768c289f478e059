// =============================================================================
// TigerTamer - TigerStop Writer Module
// =============================================================================
//
// This module generates TigerStop cutlist (.tiger) files. A .tiger file is
// an XML document the saw controller loads directly:
//
//   <CutList xmlns:xsi="..." xmlns:xsd="...">
//     <style>Setpoint</style>              <!-- Machine settings -->
//     <unit>English</unit>
//     ...
//     <fname>job name[2in]</fname>         <!-- File name without extension -->
//     <printStrings>                       <!-- Label layout for printed tags -->
//       <LabelField>
//         <header>Index</header>
//         <fontSize>12</fontSize>
//         <x>0</x>
//         <y>0</y>
//         <column>0</column>
//       </LabelField>
//       ...
//     </printStrings>
//     <pieces>
//       <Piece>
//         <labelStrings>                   <!-- One string per LabelField -->
//           <string>1</string>
//           <string>BR</string>
//           <string>R1:4</string>
//         </labelStrings>
//         <length>42</length>
//         <quantity>2</quantity>
//         <completed>0</completed>
//       </Piece>
//     </pieces>
//   </CutList>
//
// Pieces are written sorted by location so the saw operator works through
// the job one cabinet at a time.
//
// =============================================================================

package tigerfmt

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/mozaik-tools/tigertamer/internal/cutlist"
)

// FileExt is the extension for TigerStop cutlist files.
const FileExt = ".tiger"

// =============================================================================
// MACHINE SETTINGS
// =============================================================================

// Settings holds the machine settings written into every .tiger file.
// TigerStop reads these as strings, so they stay strings here. Values are
// loaded from the config file and rarely changed.
type Settings struct {
	Style              string `yaml:"style"`
	Unit               string `yaml:"unit"`
	IsOptimized        string `yaml:"is_optimized"`
	HeadCut            string `yaml:"head_cut"`
	TailCut            string `yaml:"tail_cut"`
	PatternStockLength string `yaml:"pattern_stock_length"`
	SequenceNumber     string `yaml:"sequence_number"`
	SortString         string `yaml:"sort_string"`
	SendFileName       string `yaml:"send_file_name"`
	QuantityMultiples  string `yaml:"quantity_multiples"`
	IsInfinite         string `yaml:"is_infinite"`
	IsCascade          string `yaml:"is_cascade"`
}

// DefaultSettings returns the machine settings used when the config file
// does not override them.
func DefaultSettings() Settings {
	return Settings{
		Style:              "Setpoint",
		Unit:               "English",
		IsOptimized:        "true",
		HeadCut:            "0",
		TailCut:            "0",
		PatternStockLength: "0",
		SequenceNumber:     "1",
		SortString:         "",
		SendFileName:       "true",
		QuantityMultiples:  "false",
		IsInfinite:         "false",
		IsCascade:          "false",
	}
}

// =============================================================================
// GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for .tiger generation.
type GenerateOptions struct {
	// Settings are the machine settings for the header block.
	Settings Settings

	// ExtraData adds the part note as a fourth label column.
	ExtraData bool

	// Indent is the string used for indentation. Default: two spaces.
	Indent string
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Settings: DefaultSettings(),
		Indent:   "  ",
	}
}

// =============================================================================
// GENERATION
// =============================================================================

// Generate creates a .tiger document from a width file using default options.
func Generate(wf *cutlist.WidthFile) []byte {
	return GenerateWithOptions(wf, DefaultGenerateOptions())
}

// GenerateWithOptions creates a .tiger document with custom options.
func GenerateWithOptions(wf *cutlist.WidthFile, options GenerateOptions) []byte {
	if options.Indent == "" {
		options.Indent = "  "
	}

	root := buildDocument(wf, options)

	var buffer bytes.Buffer
	buffer.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	writeElement(&buffer, root, options.Indent, 0)
	return buffer.Bytes()
}

// buildDocument constructs the CutList element tree.
func buildDocument(wf *cutlist.WidthFile, options GenerateOptions) element {
	s := options.Settings

	root := element{
		name: "CutList",
		attrs: []attr{
			{"xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance"},
			{"xmlns:xsd", "http://www.w3.org/2001/XMLSchema"},
		},
	}

	root.children = append(root.children,
		textElement("style", s.Style),
		textElement("unit", s.Unit),
		textElement("isOptimized", s.IsOptimized),
		textElement("headCut", s.HeadCut),
		textElement("tailCut", s.TailCut),
		textElement("patternStockLength", s.PatternStockLength),
		textElement("sequenceNumber", s.SequenceNumber),
		textElement("sortString", s.SortString),
		textElement("sendFileName", s.SendFileName),
		textElement("fname", wf.SourceName),
		textElement("quantityMultiples", s.QuantityMultiples),
		textElement("isInfinite", s.IsInfinite),
		textElement("isCascade", s.IsCascade),
		buildPrintStrings(options.ExtraData),
		buildPieces(wf.Parts, options.ExtraData),
	)

	return root
}

// buildPrintStrings constructs the label layout block. Each LabelField
// describes one column on the printed part tag.
func buildPrintStrings(extraData bool) element {
	headers := []string{"Index", "Part", "No"}
	if extraData {
		headers = append(headers, "Note")
	}

	printStrings := element{name: "printStrings"}
	for col, header := range headers {
		printStrings.children = append(printStrings.children, element{
			name: "LabelField",
			children: []element{
				textElement("header", header),
				textElement("fontSize", "12"),
				textElement("x", "0"),
				textElement("y", strconv.Itoa(col*20)),
				textElement("column", strconv.Itoa(col)),
			},
		})
	}
	return printStrings
}

// buildPieces constructs the pieces block, one Piece per part, sorted by
// location. Index values are 1-based and assigned after sorting.
func buildPieces(parts []*cutlist.PartRecord, extraData bool) element {
	sorted := make([]*cutlist.PartRecord, len(parts))
	copy(sorted, parts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Location < sorted[j].Location
	})

	pieces := element{name: "pieces"}
	for i, part := range sorted {
		labels := element{
			name: "labelStrings",
			children: []element{
				textElement("string", strconv.Itoa(i+1)),
				textElement("string", part.Type),
				textElement("string", part.Location),
			},
		}
		if extraData {
			labels.children = append(labels.children, textElement("string", part.Note))
		}

		pieces.children = append(pieces.children, element{
			name: "Piece",
			children: []element{
				labels,
				textElement("length", part.Length),
				textElement("quantity", strconv.Itoa(part.Count)),
				textElement("completed", "0"),
			},
		})
	}
	return pieces
}

// =============================================================================
// ELEMENT WRITING
// =============================================================================

type attr struct {
	name  string
	value string
}

// element is a minimal XML element for building the document in order.
type element struct {
	name     string
	attrs    []attr
	value    string
	children []element
}

// textElement creates an element with a text value. An empty value renders
// as a self-closing tag, as in the files TigerStop itself produces.
func textElement(name, value string) element {
	return element{name: name, value: value}
}

// writeElement writes an XML element to the buffer with indentation.
func writeElement(buffer *bytes.Buffer, el element, indent string, level int) {
	for i := 0; i < level; i++ {
		buffer.WriteString(indent)
	}

	buffer.WriteString("<")
	buffer.WriteString(el.name)
	for _, a := range el.attrs {
		buffer.WriteString(fmt.Sprintf(" %s=\"%s\"", a.name, escapeXML(a.value)))
	}

	if len(el.children) == 0 && el.value == "" {
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")

	if len(el.children) == 0 {
		buffer.WriteString(escapeXML(el.value))
	} else {
		buffer.WriteString("\n")
		for _, child := range el.children {
			writeElement(buffer, child, indent, level+1)
		}
		for i := 0; i < level; i++ {
			buffer.WriteString(indent)
		}
	}

	buffer.WriteString("</")
	buffer.WriteString(el.name)
	buffer.WriteString(">\n")
}

// escapeXML escapes special characters for XML.
func escapeXML(s string) string {
	var buffer bytes.Buffer

	for _, r := range s {
		switch r {
		case '&':
			buffer.WriteString("&amp;")
		case '<':
			buffer.WriteString("&lt;")
		case '>':
			buffer.WriteString("&gt;")
		case '"':
			buffer.WriteString("&quot;")
		case '\'':
			buffer.WriteString("&apos;")
		default:
			buffer.WriteRune(r)
		}
	}

	return buffer.String()
}

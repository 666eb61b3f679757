// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

// Variant is the closed discriminant of a Component's kind. It determines
// default measurement behavior, the emitted HTML element, and which
// children are permitted. New variants are never added dynamically; the
// set is fixed by this specification.
type Variant int32

const (
	VariantContainer Variant = iota
	VariantText
	VariantButton
	VariantInput
	VariantCheckbox
	VariantDropdown
	VariantTextArea
	VariantRow
	VariantColumn
	VariantCenter
	VariantImage
	VariantCanvas
	VariantMarkdown
	VariantSprite
	VariantTabGroup
	VariantTabBar
	VariantTab
	VariantTabContent
	VariantTabPanel
	VariantModal
	VariantTable
	VariantTableRow
	VariantTableCell
	VariantTableHeaderCell
	VariantHeading
	VariantParagraph
	VariantBlockquote
	VariantCodeBlock
	VariantHorizontalRule
	VariantList
	VariantListItem
	VariantLink
	VariantSpan
	VariantStrong
	VariantEm
	VariantCodeInline
	VariantSmall
	VariantMark
	VariantCustom
	VariantStaticBlock
	VariantForLoop
	VariantForEach
	VariantVarDecl
	VariantPlaceholder
	VariantFlowchart
	VariantFlowchartNode
	VariantFlowchartEdge
	VariantFlowchartGroup

	numVariants
)

var variantNames = [numVariants]string{
	VariantContainer:       "Container",
	VariantText:            "Text",
	VariantButton:          "Button",
	VariantInput:           "Input",
	VariantCheckbox:        "Checkbox",
	VariantDropdown:        "Dropdown",
	VariantTextArea:        "TextArea",
	VariantRow:             "Row",
	VariantColumn:          "Column",
	VariantCenter:          "Center",
	VariantImage:           "Image",
	VariantCanvas:          "Canvas",
	VariantMarkdown:        "Markdown",
	VariantSprite:          "Sprite",
	VariantTabGroup:        "TabGroup",
	VariantTabBar:          "TabBar",
	VariantTab:             "Tab",
	VariantTabContent:      "TabContent",
	VariantTabPanel:        "TabPanel",
	VariantModal:           "Modal",
	VariantTable:           "Table",
	VariantTableRow:        "TableRow",
	VariantTableCell:       "TableCell",
	VariantTableHeaderCell: "TableHeaderCell",
	VariantHeading:         "Heading",
	VariantParagraph:       "Paragraph",
	VariantBlockquote:      "Blockquote",
	VariantCodeBlock:       "CodeBlock",
	VariantHorizontalRule:  "HorizontalRule",
	VariantList:            "List",
	VariantListItem:        "ListItem",
	VariantLink:            "Link",
	VariantSpan:            "Span",
	VariantStrong:          "Strong",
	VariantEm:              "Em",
	VariantCodeInline:      "CodeInline",
	VariantSmall:           "Small",
	VariantMark:            "Mark",
	VariantCustom:          "Custom",
	VariantStaticBlock:     "StaticBlock",
	VariantForLoop:         "ForLoop",
	VariantForEach:         "ForEach",
	VariantVarDecl:         "VarDecl",
	VariantPlaceholder:     "Placeholder",
	VariantFlowchart:       "Flowchart",
	VariantFlowchartNode:   "FlowchartNode",
	VariantFlowchartEdge:   "FlowchartEdge",
	VariantFlowchartGroup:  "FlowchartGroup",
}

// String returns the canonical KIR "type" name for v (PascalCase, per §6).
func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) || variantNames[v] == "" {
		return "Container"
	}
	return variantNames[v]
}

var variantByName map[string]Variant

func init() {
	variantByName = make(map[string]Variant, numVariants)
	for v, name := range variantNames {
		if name != "" {
			variantByName[name] = Variant(v)
		}
	}
}

// VariantFromName resolves a canonical KIR type name to a Variant.
// Unknown variants deserialize as Container, per §4.8.
func VariantFromName(name string) Variant {
	if v, ok := variantByName[name]; ok {
		return v
	}
	return VariantContainer
}

// defaultHTMLElement maps a Variant to the HTML element the backend
// collaborator emits for it (§6). This is documentation for that
// collaborator's contract, not a renderer: the core never emits HTML.
func (v Variant) defaultHTMLElement() string {
	switch v {
	case VariantHeading:
		return "h1" // level-adjusted by the backend from custom_data.level
	case VariantParagraph:
		return "p"
	case VariantBlockquote:
		return "blockquote"
	case VariantCodeBlock:
		return "pre"
	case VariantCodeInline:
		return "code"
	case VariantHorizontalRule:
		return "hr"
	case VariantList:
		return "ul" // ordered/unordered resolved by the backend from custom_data.type
	case VariantListItem:
		return "li"
	case VariantLink:
		return "a"
	case VariantSpan, VariantSmall, VariantMark:
		return "span"
	case VariantStrong:
		return "strong"
	case VariantEm:
		return "em"
	case VariantButton:
		return "button"
	case VariantInput:
		return "input"
	case VariantTextArea:
		return "textarea"
	case VariantImage:
		return "img"
	case VariantCanvas:
		return "canvas"
	case VariantTable:
		return "table"
	case VariantTableRow:
		return "tr"
	case VariantTableCell:
		return "td"
	case VariantTableHeaderCell:
		return "th"
	default:
		return "div"
	}
}

// DefaultHTMLElement exposes defaultHTMLElement to external collaborators
// (the HTML/CSS backend, §6) without requiring them to duplicate the
// per-variant table.
func (v Variant) DefaultHTMLElement() string { return v.defaultHTMLElement() }

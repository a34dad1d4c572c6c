package todo

import (
	"unicode"

	g "github.com/mytec0l/ToDoListParser/internal/grammar"
)

// Rule names of the task grammar.
const (
	RuleFile            = "file"
	RuleEmptyLine       = "empty_line"
	RuleTask            = "task"
	RulePriority        = "priority"
	RuleStatus          = "status"
	RuleComplete        = "complete"
	RuleIncomplete      = "incomplete"
	RuleInProgress      = "in_progress"
	RuleDescription     = "description"
	RuleDescriptionPart = "description_part"
	RuleTag             = "tag"
	RuleDueDate         = "due_date"
	RuleStartDate       = "start_date"
	RuleText            = "text"
	RuleEOI             = "EOI"
)

// Markers that open dated description parts.
const (
	DueDateMarker   = "@"
	StartDateMarker = ">"
	TagMarker       = "+"
)

func isHSpace(r rune) bool { return r != '\n' && r != '\r' && unicode.IsSpace(r) }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isSpace(r rune) bool  { return unicode.IsSpace(r) }

// Grammar is the task file grammar:
//
//	file        = (empty_line | task)* EOI
//	empty_line  = hspace* newline | hspace+ &EOI
//	task        = hspace* (priority hspace+)? status (hspace+ description)? hspace* (newline | &EOI)
//	priority    = "*"{1,3}
//	status      = "[" (in_progress | complete | incomplete) "]"
//	description = description_part (hspace+ description_part)*
//	description_part = due_date &boundary | start_date &boundary | tag | text
//	tag         = "+" nonspace+
//	due_date    = "@" date
//	start_date  = ">" date
//	text        = word (hspace+ !special word)*
var Grammar = g.Grammar{
	{Name: RuleFile, Expr: g.Seq(
		g.Star(g.Choice(g.Ref(RuleEmptyLine), g.Ref(RuleTask))),
		g.Ref(RuleEOI),
	)},
	{Name: RuleEmptyLine, Expr: g.Choice(
		g.Seq(g.Star(g.Ref("hspace")), g.Ref("newline")),
		g.Seq(g.Plus(g.Ref("hspace")), g.And(g.EOI())),
	)},
	{Name: RuleTask, Expr: g.Seq(
		g.Star(g.Ref("hspace")),
		g.Opt(g.Seq(g.Ref(RulePriority), g.Plus(g.Ref("hspace")))),
		g.Ref(RuleStatus),
		g.Opt(g.Seq(g.Plus(g.Ref("hspace")), g.Ref(RuleDescription))),
		g.Star(g.Ref("hspace")),
		g.Choice(g.Ref("newline"), g.And(g.EOI())),
	)},
	{Name: RulePriority, Expr: g.Repeat(g.Lit("*"), 1, 3)},
	{Name: RuleStatus, Expr: g.Seq(
		g.Lit("["),
		g.Choice(g.Ref(RuleInProgress), g.Ref(RuleComplete), g.Ref(RuleIncomplete)),
		g.Lit("]"),
	)},
	{Name: RuleInProgress, Expr: g.Lit("DOING")},
	{Name: RuleComplete, Expr: g.Lit("DONE")},
	{Name: RuleIncomplete, Expr: g.Lit("TODO")},
	{Name: RuleDescription, Expr: g.Seq(
		g.Ref(RuleDescriptionPart),
		g.Star(g.Seq(g.Plus(g.Ref("hspace")), g.Ref(RuleDescriptionPart))),
	)},
	{Name: RuleDescriptionPart, Expr: g.Choice(
		g.Seq(g.Ref(RuleDueDate), g.And(g.Ref("boundary"))),
		g.Seq(g.Ref(RuleStartDate), g.And(g.Ref("boundary"))),
		g.Ref(RuleTag),
		g.Ref(RuleText),
	)},
	{Name: RuleTag, Expr: g.Seq(g.Lit(TagMarker), g.Plus(g.Ref("nonspace")))},
	{Name: RuleDueDate, Expr: g.Seq(g.Lit(DueDateMarker), g.Ref("date"))},
	{Name: RuleStartDate, Expr: g.Seq(g.Lit(StartDateMarker), g.Ref("date"))},
	{Name: RuleText, Expr: g.Seq(
		g.Ref("word"),
		g.Star(g.Seq(g.Plus(g.Ref("hspace")), g.Not(g.Ref("special")), g.Ref("word"))),
	)},
	{Name: RuleEOI, Expr: g.EOI()},

	{Name: "special", Silent: true, Expr: g.Choice(
		g.Ref(RuleTag),
		g.Seq(g.Choice(g.Ref(RuleDueDate), g.Ref(RuleStartDate)), g.And(g.Ref("boundary"))),
	)},
	{Name: "date", Silent: true, Expr: g.Seq(
		g.Repeat(g.Ref("digit"), 4, 4), g.Lit("-"),
		g.Repeat(g.Ref("digit"), 2, 2), g.Lit("-"),
		g.Repeat(g.Ref("digit"), 2, 2),
	)},
	{Name: "word", Silent: true, Expr: g.Plus(g.Ref("nonspace"))},
	{Name: "boundary", Silent: true, Expr: g.Choice(g.Ref("hspace"), g.Ref("newline"), g.EOI())},
	{Name: "newline", Silent: true, Expr: g.Choice(g.Lit("\r\n"), g.Lit("\n"), g.Lit("\r"))},
	{Name: "hspace", Silent: true, Expr: g.Class("whitespace", isHSpace)},
	{Name: "nonspace", Silent: true, Expr: g.Class("non-whitespace character", func(r rune) bool { return !isSpace(r) })},
	{Name: "digit", Silent: true, Expr: g.Class("digit", isDigit)},
}

var engine = g.MustCompile(Grammar)

// Engine returns the compiled task grammar.
func Engine() *g.Engine {
	return engine
}

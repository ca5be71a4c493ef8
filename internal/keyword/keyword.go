// Package keyword implements PriamosBASIC's keyword registry (§4.B): a
// process-wide, read-only table mapping keyword text to its two-byte
// token code and back. It is built once from a static predefined-keyword
// table, grounded on the teacher's token-family layout
// (internal/lexer/token_type.go in the teacher repo) and on the original
// priamosbasic keywords.cpp entry list.
package keyword

import (
	"sync"

	"github.com/ekkehard/priamosbasic/internal/token"
)

// entry pairs a keyword's uppercase text with its code. The text is
// stored length-prefixed in the single byte immediately before the
// bytes, mirroring the original predefined table's "\3NOP"-style
// Pascal-ish strings, so a detokenizer holding only a pointer into this
// table could recover the length by reading one byte back; our Go
// implementation stores the length explicitly on Entry instead, which
// the spec allows.
type Entry struct {
	Name string
	Code token.Code
}

// Registry is the bidirectional keyword table. The zero value is not
// usable; use Global() or New().
type Registry struct {
	byName map[string]token.Code
	byCode map[token.Code]string
}

var (
	global     *Registry
	globalOnce sync.Once
)

// Global returns the process-wide singleton registry, building it on
// first use. Safe for concurrent use once built; construction itself
// runs exactly once via sync.Once.
func Global() *Registry {
	globalOnce.Do(func() {
		global = New()
	})
	return global
}

// New builds a fresh registry from the predefined keyword table. Most
// callers want Global(); New is exposed for tests that need an isolated
// instance.
func New() *Registry {
	r := &Registry{
		byName: make(map[string]token.Code, len(predefined)),
		byCode: make(map[token.Code]string, len(predefined)),
	}
	for _, e := range predefined {
		// A handful of keyword texts are reused across families in the
		// original token table (e.g. "NEXT" is both the FOR/NEXT
		// statement and an associative-array iterator function). The
		// first definition in the table wins name resolution — the
		// statement family is listed first — but every code still gets
		// a byCode entry so the detokenizer renders either one
		// correctly.
		if _, taken := r.byName[e.Name]; !taken {
			r.byName[e.Name] = e.Code
		}
		r.byCode[e.Code] = e.Name
	}
	return r
}

// LookupByName returns the token code for an exact (already
// uppercased) keyword name, and whether it was found.
func (r *Registry) LookupByName(name string) (token.Code, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// LookupByCode returns the keyword text for a code, and whether it was
// found.
func (r *Registry) LookupByCode(c token.Code) (string, bool) {
	name, ok := r.byCode[c]
	return name, ok
}

// predefined is the static (text, code) table the registry is built
// from once at process start.
var predefined = []Entry{
	{"NOP", token.KwNop}, {"END", token.KwEnd}, {"AGAIN", token.KwAgain},
	{"LEAVE", token.KwLeave}, {"BREAK", token.KwBreak}, {"ITERATE", token.KwIterate},
	{"CONT", token.KwCont}, {"STOP", token.KwStop}, {"RESTORE", token.KwRestore},
	{"READ", token.KwRead}, {"DATA", token.KwData}, {"FOR", token.KwFor},
	{"RETURN", token.KwReturn}, {"GOSUB", token.KwGosub}, {"GOTO", token.KwGoto},
	{"RESET", token.KwReset}, {"FORTH", token.KwForth}, {"SEND", token.KwSend},
	{"BIND", token.KwBind}, {"BLOCK", token.KwBlock}, {"NONBLOCK", token.KwNonblock},
	{"LISTEN", token.KwListen}, {"CONNECT", token.KwConnect}, {"OPEN", token.KwOpen},
	{"CLOSE", token.KwClose}, {"INPUT", token.KwInput}, {"REWIND", token.KwRewind},
	{"SEEK", token.KwSeek}, {"LET", token.KwLet}, {"IF", token.KwIf},
	{"UNLESS", token.KwUnless}, {"NEW", token.KwNew}, {"OLD", token.KwOld},
	{"SAVE", token.KwSave}, {"LOAD", token.KwLoad}, {"DIR", token.KwDir},
	{"CHDIR", token.KwChdir}, {"PUSHDIR", token.KwPushdir}, {"POPDIR", token.KwPopdir},
	{"RUN", token.KwRun}, {"LIST", token.KwList}, {"DELETE", token.KwDelete},
	{"RENUM", token.KwRenum}, {"HELP", token.KwHelp}, {"QHELP", token.KwQhelp},
	{"WHY", token.KwWhy}, {"CALL", token.KwCall}, {"RESULT", token.KwResult},
	{"OPTION", token.KwOption}, {"DEF", token.KwDef}, {"DIM", token.KwDim},
	{"NEXT", token.KwNext}, {"CLR", token.KwClr}, {"RANDOMIZE", token.KwRandomize},
	{"DEG", token.KwDeg}, {"RAD", token.KwRad}, {"WHILE", token.KwWhile},
	{"WEND", token.KwWend}, {"REPEAT", token.KwRepeat}, {"UNTIL", token.KwUntil},
	{"FOREVER", token.KwForever}, {"FOREACH", token.KwForeach},
	{"WARRANTY", token.KwWarranty}, {"CONDITIONS", token.KwConditions},

	{"ASC", token.KwAsc}, {"VAL", token.KwVal}, {"STR$", token.KwStrS},
	{"TI", token.KwTi}, {"TI$", token.KwTiS}, {"LEFT$", token.KwLeftS},
	{"RIGHT$", token.KwRightS}, {"MID$", token.KwMidS}, {"POS", token.KwPos},
	{"HPOS", token.KwHpos}, {"VPOS", token.KwVpos}, {"BIN$", token.KwBinS},
	{"OCT$", token.KwOctS}, {"DEC$", token.KwDecS}, {"HEX$", token.KwHexS},
	{"CVI", token.KwCvi}, {"CVF", token.KwCvf}, {"MKI$", token.KwMkiS},
	{"MKF$", token.KwMkfS}, {"WHERE$", token.KwWhereS}, {"IPV4$", token.KwIpv4S},
	{"IPV6$", token.KwIpv6S}, {"HOSTNAME$", token.KwHostnameS}, {"DOMAIN$", token.KwDomainS},
	{"RECV$", token.KwRecvS}, {"SOCKETV4", token.KwSocketv4}, {"SOCKETV6", token.KwSocketv6},
	{"ACCEPT", token.KwAccept}, {"CWD$", token.KwCwdS}, {"RND", token.KwRnd},
	{"SIN", token.KwSin}, {"LN", token.KwLn}, {"LOG", token.KwLog},
	{"LOG2", token.KwLog2}, {"COS", token.KwCos}, {"TAN", token.KwTan},
	{"COT", token.KwCot}, {"ATN", token.KwAtn}, {"HEAD", token.KwHead},
	{"TAIL", token.KwTail}, {"TRUE", token.KwTrue}, {"FALSE", token.KwFalse},
	{"NIL", token.KwNil}, {"NEXT", token.KwNextFn}, {"PREV", token.KwPrevFn},
	{"CELLS", token.KwCells},

	{"SUB", token.KwSub}, {"FUNC", token.KwFunc}, {"BASE", token.KwBase},
	{"BYTEORDER", token.KwByteorder}, {"INT", token.KwInt}, {"FLOAT", token.KwFloat},
	{"FIXED", token.KwFixed}, {"FN", token.KwFn}, {"DYNAMIC", token.KwDynamic},
	{"PTR", token.KwPtr}, {"LINE", token.KwLine}, {"IN", token.KwIn},
	{"LABEL", token.KwLabel}, {"THEN", token.KwThen}, {"TO", token.KwTo},
	{"DOWNTO", token.KwDownto}, {"ASSOC", token.KwAssoc},

	{"AND", token.OpAnd}, {"OR", token.OpOr}, {"XOR", token.OpXor},
	{"NOT", token.OpNot}, {"NAND", token.OpNand}, {"NOR", token.OpNor},
	{"XNOR", token.OpXnor}, {"EQV", token.OpEqv}, {"NEQV", token.OpNeqv},
	{"SHL", token.OpShl}, {"SHR", token.OpShr},
}

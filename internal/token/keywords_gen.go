package token

// Statement keywords (0x03 family). Codes follow the original
// priamosbasic token table; gaps at 0x0325, 0x032D and 0x0342+ are
// reserved slots and must not be reused.
const (
	KwNop       Code = 0x0300
	KwEnd       Code = 0x0301
	KwAgain     Code = 0x0302
	KwLeave     Code = 0x0303
	KwBreak     Code = 0x0304
	KwIterate   Code = 0x0305
	KwCont      Code = 0x0306
	KwStop      Code = 0x0307
	KwRestore   Code = 0x0308
	KwRead      Code = 0x0309
	KwData      Code = 0x030A
	KwFor       Code = 0x030B
	KwReturn    Code = 0x030C
	KwGosub     Code = 0x030D
	KwGoto      Code = 0x030E
	KwReset     Code = 0x030F
	KwForth     Code = 0x0310
	KwSend      Code = 0x0311
	KwBind      Code = 0x0312
	KwBlock     Code = 0x0313
	KwNonblock  Code = 0x0314
	KwListen    Code = 0x0315
	KwConnect   Code = 0x0316
	KwOpen      Code = 0x0317
	KwClose     Code = 0x0318
	KwInput     Code = 0x0319
	KwRewind    Code = 0x031A
	KwSeek      Code = 0x031B
	KwLet       Code = 0x031C
	KwIf        Code = 0x031D
	KwUnless    Code = 0x031E
	KwNew       Code = 0x031F
	KwOld       Code = 0x0320
	KwSave      Code = 0x0321
	KwLoad      Code = 0x0322
	KwDir       Code = 0x0323
	KwChdir     Code = 0x0324
	KwPushdir   Code = 0x0326
	KwPopdir    Code = 0x0327
	KwRun       Code = 0x0328
	KwList      Code = 0x0329
	KwDelete    Code = 0x032A
	KwRenum     Code = 0x032B
	KwHelp      Code = 0x032C
	KwQhelp     Code = 0x032E
	KwWhy       Code = 0x032F
	KwCall      Code = 0x0330
	KwResult    Code = 0x0331
	KwOption    Code = 0x0332
	KwDef       Code = 0x0333
	KwDim       Code = 0x0334
	KwNext      Code = 0x0335
	KwClr       Code = 0x0336
	KwRandomize Code = 0x0337
	KwDeg       Code = 0x0338
	KwRad       Code = 0x0339
	KwWhile     Code = 0x033A
	KwWend      Code = 0x033B
	KwRepeat    Code = 0x033C
	KwUntil     Code = 0x033D
	KwForever   Code = 0x033E
	KwForeach   Code = 0x033F
	KwWarranty  Code = 0x0340
	KwConditions Code = 0x0341
)

// Functional keywords — built-in functions (0x06 family).
const (
	KwAsc      Code = 0x0600
	KwVal      Code = 0x0601
	KwStrS     Code = 0x0602
	KwTi       Code = 0x0603
	KwTiS      Code = 0x0604
	KwLeftS    Code = 0x0605
	KwRightS   Code = 0x0606
	KwMidS     Code = 0x0607
	KwPos      Code = 0x0608
	KwHpos     Code = 0x0609
	KwVpos     Code = 0x060A
	KwBinS     Code = 0x060B
	KwOctS     Code = 0x060C
	KwDecS     Code = 0x060D
	KwHexS     Code = 0x060E
	KwCvi      Code = 0x060F
	KwCvf      Code = 0x0610
	KwMkiS     Code = 0x0611
	KwMkfS     Code = 0x0612
	KwWhereS   Code = 0x0613
	KwIpv4S    Code = 0x0614
	KwIpv6S    Code = 0x0615
	KwHostnameS Code = 0x0616
	KwDomainS  Code = 0x0617
	KwRecvS    Code = 0x0618
	KwSocketv4 Code = 0x0619
	KwSocketv6 Code = 0x061A
	KwAccept   Code = 0x061B
	KwCwdS     Code = 0x061C
	KwRnd      Code = 0x061D
	KwSin      Code = 0x061E
	KwLn       Code = 0x061F
	KwLog      Code = 0x0620
	KwLog2     Code = 0x0621
	KwCos      Code = 0x0622
	KwTan      Code = 0x0623
	KwCot      Code = 0x0624
	KwAtn      Code = 0x0625
	KwHead     Code = 0x0626
	KwTail     Code = 0x0627
	KwTrue     Code = 0x0628
	KwFalse    Code = 0x0629
	KwNil      Code = 0x062A
	KwNextFn   Code = 0x062B
	KwPrevFn   Code = 0x062C
	KwCells    Code = 0x062D
)

// Modifier keywords (0x0B family).
const (
	KwSub       Code = 0x0B00
	KwFunc      Code = 0x0B01
	KwBase      Code = 0x0B02
	KwByteorder Code = 0x0B03
	KwInt       Code = 0x0B04
	KwFloat     Code = 0x0B05
	KwFixed     Code = 0x0B06
	KwFn        Code = 0x0B07
	KwDynamic   Code = 0x0B08
	KwPtr       Code = 0x0B09
	KwLine      Code = 0x0B0A
	KwIn        Code = 0x0B0B
	KwLabel     Code = 0x0B0C
	KwThen      Code = 0x0B0D
	KwTo        Code = 0x0B0E
	KwDownto    Code = 0x0B0F

	// KwAssoc has no slot in the original priamosbasic token table (DIM
	// never needed to name the associative kind explicitly there); it
	// fills the next free 0x0B family slot so DIM can select it the same
	// way it selects KwDynamic.
	KwAssoc Code = 0x0B10
)

package netfile

// File is a parsed design: an ordered list of statements.
type File struct {
	Statements []*Statement `@@*`
}

// Statement is one design line.
type Statement struct {
	Device *DeviceStmt `  @@`
	Bel    *BelStmt    `| @@`
	Pin    *PinStmt    `| @@`
	Block  *BlockStmt  `| @@`
	Net    *NetStmt    `| @@`
}

// DeviceStmt sizes the fabric.
// Example: device 8 8
type DeviceStmt struct {
	Width  int `"device" @Int`
	Height int `@Int`
}

// BelStmt places a named logic site at a fabric node.
// Example: bel src at 0 0
type BelStmt struct {
	Name string `"bel" @Ident`
	X    int    `"at" @Int`
	Y    int    `@Int`
}

// PinStmt declares a named pin on a bel.
// Example: pin src O out
type PinStmt struct {
	Bel  string `"pin" @Ident`
	Name string `@Ident`
	Dir  string `@("in" | "out")`
}

// BlockStmt removes a rectangle of nodes from the fabric, both corners
// inclusive.
// Example: block 3 0 -> 3 6
type BlockStmt struct {
	X1 int `"block" @Int`
	Y1 int `@Int`
	X2 int `Arrow @Int`
	Y2 int `@Int`
}

// NetStmt connects one driving pin to any number of sinks.
// Example: net n1 drive src.O sink a.I sink b.I
type NetStmt struct {
	Name  string    `"net" @Ident`
	Drive *PinRef   `"drive" @@`
	Sinks []*PinRef `("sink" @@)*`
}

// PinRef names a pin on a bel, written BEL.PIN.
type PinRef struct {
	Bel string `@Ident`
	Pin string `Dot @Ident`
}

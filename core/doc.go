// Package core defines the central identifier, netlist, and routing-database
// types shared by every pnroute package, together with the deterministic
// random stream that drives all tie-breaking and shuffling.
//
// What
//
//   - Opaque device identifiers: Wire, Pip, Bel (int32 indices with -1
//     sentinels) and interned string identifiers: NetID, CellID, PortPin.
//   - Netlist structures: Cell, PortRef, Net, BoundSegment.
//   - The Device interface: the read-only routing-graph and delay-model
//     contract a device backend must satisfy.
//   - Context: ties a Device to a netlist, owns the routing database
//     (wire and pip bindings), the RNG stream, and the logger, and exposes
//     Checksum and Check validation hooks.
//   - ReadProxy / MutateProxy: scoped access to the routing database.
//     Read-only queries may run concurrently with each other; binding
//     operations hold exclusive access, so the database invariants hold
//     whenever a proxy is released.
//
// Binding model
//
//	Every wire and every pip carries at most one (net, strength) binding.
//	Binding a pip also binds its destination wire, recording the pip as the
//	entry into that wire; unbinding either side releases both. Bindings
//	above StrengthWeak are locked: they hide their owner from conflict
//	queries and refuse modification.
//
// Determinism
//
//	All randomness flows from a single xorshift64* stream owned by the
//	Context. Two runs with equal inputs and equal seeds produce identical
//	final bindings and an identical Checksum.
package core

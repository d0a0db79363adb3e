// Package ddg builds the data dependency graph of a single block.
//
// A Graph has one Node per statement plus two synthetic nodes: Source, which
// precedes every statement, and Sink, which follows the completion of every
// statement. Each Edge carries a minimum latency in cycles: a successor may
// not start earlier than its predecessor's cycle plus the latency.
//
// Graphs are ephemeral. They are built for one scheduling pass, optionally
// reversed for ALAP scheduling or criticality analysis, and cleared
// afterwards. Reverse never modifies the graph it is called on.
package ddg

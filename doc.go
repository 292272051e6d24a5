/*
Package pathcollapse implements a streaming path-collapse engine for a
positional de Bruijn assembly graph: it consumes path-nodes (maximal
unbranched k-mer chains tagged with the reference-coordinate interval at
which they were observed) in non-decreasing first-position order, and emits
a simplified stream in which near-identical parallel paths — the bubbles
and dead-end leaves produced by sequencing errors — have been merged into
their higher-weight neighbour.

The engine is organized as a small set of packages, each owning one layer
of the problem:

  kmer       packs/unpacks DNA k-mers and counts base mismatches between
             two k-mer chains.
  pos        the reference-coordinate position type and interval shared by
             every other package.
  graph      the path-node type, its subnode (interval-restricted) view,
             and the depth-first cursor used to walk candidate paths.
  buffer     the two llrb-backed ordered buffers (by lastEnd, by
             firstStart) the driver streams nodes through.
  collapse   the similar-path search, the tryCollapse topology tests
             (common-child bubble, leaf collapse), and the merge-paths
             structural transform.
  simplifier the streaming driver: Next() pulls upstream nodes, advances
             the process/emit horizons, and triggers collapse attempts as
             nodes settle.

A caller drives the engine by implementing simplifier.Iterator over
whatever upstream produces path-nodes (an assembler's read-evidence
pipeline, typically), and reading simplifier.Simplifier.Next in a loop.
The package does no file I/O and defines no on-disk format; that is the
caller's responsibility.
*/
package pathcollapse

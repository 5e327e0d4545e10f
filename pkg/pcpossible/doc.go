// Package pcpossible decides, order by order, whether a supply of upcoming
// shapes can clear a clipped board completely.
//
// [Executor] answers a single concrete shape order, consuming shapes from
// the front with an optional hold slot. [BulkExecutor] runs every order a
// pattern denotes and reuses each success to mark the other orders it
// proves along the way. [ExecutorBinder] carries the settings and builds
// executors from them.
package pcpossible

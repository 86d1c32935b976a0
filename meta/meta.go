// meta/meta.go
package meta

// GO_ROUTINES is the default number of playout workers. Zero means one per CPU.
const GO_ROUTINES = 0

// PLAYOUTS is the default number of random playouts per position estimate.
const PLAYOUTS = 1000

// MOVE_PLAYOUTS is the number of playouts spent on each candidate move.
const MOVE_PLAYOUTS = 10000

// GAMES is the default number of self-play games.
const GAMES = 10

// MAX_PLIES bounds a single game: 60 placements plus the passes in between.
const MAX_PLIES = 128

// Package roundpeg fits round pegs into square holes through an adapter.
package roundpeg

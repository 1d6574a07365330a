// Package common contains the data types, domain-separation constants,
// and bit-manipulation helpers shared by the ots, lms, hss and sst
// packages.
//
// This file defines values that should be treated as constants.
package common

// ID_LEN is the length, in bytes, of an LMS tree identifier I.
const ID_LEN uint64 = 16

// SEED_LEN is the length, in bytes, of a master seed used to derive an
// LMS or HSS private key. Fixed at 32 regardless of the configured hash
// output size, matching the reference private key layout of RFC 8554
// Appendix A and the hbs-lms reference implementation this package
// generalizes.
const SEED_LEN uint64 = 32

// MAX_HASH_SIZE bounds the digest size of any supported hash provider
// (32 bytes, for SHA-256 or a 32-byte SHAKE256 squeeze). No code in
// this module currently sizes a buffer from it.
const MAX_HASH_SIZE uint64 = 32

// MAX_HSS_LEVELS is the largest HSS parameter-list length this package
// accepts (RFC 8554 §6 allows up to 8).
const MAX_HSS_LEVELS = 8

// arrays cannot be constant in go
// please never change these values
var D_PBLC = [2]uint8{0x80, 0x80}
var D_MESG = [2]uint8{0x81, 0x81}
var D_LEAF = [2]uint8{0x82, 0x82}
var D_INTR = [2]uint8{0x83, 0x83}

// D_CHILD_SEED separates the PRF used to derive a subordinate HSS
// level's seed from its parent's seed and leaf index. Not part of
// RFC 8554's OTS/LMS domain separation; internal to the HSS layer's
// lazy subtree construction.
var D_CHILD_SEED = [2]uint8{0x84, 0x84}

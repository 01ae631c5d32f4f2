// Package ir holds the in-memory document tree the patch engine
// operates on.
//
// A document is a tree of Nodes, each carrying a tag name, ordered
// attributes, ordered children and optional text content. The tree is
// mutated in place by patch operations; parent/index back-links are
// maintained through every mutation so that node positions stay
// reportable.
//
// Two sibling rules shape the model: children tagged "li" are list
// items and may repeat freely, while all other sibling tags must be
// unique under one parent. The reserved attributes Name, ParentName
// and Abstract mark template nodes and their inheritors; they are
// consumed by package inherit, not by the engine.
package ir

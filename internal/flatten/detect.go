package flatten

import "github.com/beevik/etree"

// tagCount is one entry of an insertion-ordered tag histogram.
type tagCount struct {
	tag   string
	count int
}

// countChildTags counts the direct child tags of el in first-encountered order.
func countChildTags(el *etree.Element) []tagCount {
	var counts []tagCount
	index := make(map[string]int)
	for _, child := range el.ChildElements() {
		tag := child.FullTag()
		if i, ok := index[tag]; ok {
			counts[i].count++
			continue
		}
		index[tag] = len(counts)
		counts = append(counts, tagCount{tag: tag, count: 1})
	}
	return counts
}

// maxRepeated returns the tag with the highest count above one. Ties go to the
// tag encountered first.
func maxRepeated(counts []tagCount) (string, bool) {
	best := -1
	for i, c := range counts {
		if c.count < 2 {
			continue
		}
		if best < 0 || c.count > counts[best].count {
			best = i
		}
	}
	if best < 0 {
		return "", false
	}
	return counts[best].tag, true
}

// DetectRepeating guesses which tag marks the repeating records of a document.
//
// The root's direct children are checked first. If none of them repeat, each
// child's own children are checked in document order and the first child with
// a repeat decides. The search stops at that depth. When nothing repeats the
// second result is false and the root itself is the only record.
func DetectRepeating(root *etree.Element) (string, bool) {
	if tag, ok := maxRepeated(countChildTags(root)); ok {
		return tag, true
	}
	for _, child := range root.ChildElements() {
		if tag, ok := maxRepeated(countChildTags(child)); ok {
			return tag, true
		}
	}
	return "", false
}

package eeprom

import (
	"fmt"

	"github.com/moffa90/go-iicprog/iic"
)

// Range is a run of bytes starting at a block offset. End may lie past the
// end of the block; SplitRange moves the overflow into the other block.
type Range struct {
	Block  iic.Block
	Offset uint16
	Size   int
}

// End returns the offset one past the last byte, relative to the block start.
func (r Range) End() int {
	return int(r.Offset) + r.Size
}

func (r Range) String() string {
	return fmt.Sprintf("%s+0x%X", iic.Address{Block: r.Block, Offset: r.Offset}, r.Size)
}

// SplitRange splits r at the block boundary. A range that fits its block is
// returned as is; otherwise the bytes past 0x10000 continue at offset 0 of the
// other block. The parts always sum to r.Size.
//
// Example:
//
//	parts, _ := eeprom.SplitRange(eeprom.Range{Block: iic.Block0, Offset: 0xFFF0, Size: 0x20})
//	// parts[0] = block 0 0xFFF0 size 0x10, parts[1] = block 1 0x0000 size 0x10
func SplitRange(r Range) ([]Range, error) {
	if r.Size <= 0 {
		return nil, &RangeError{Range: r, Reason: "size must be positive"}
	}
	if r.End() <= iic.BlockSize {
		return []Range{r}, nil
	}

	head := Range{Block: r.Block, Offset: r.Offset, Size: iic.BlockSize - int(r.Offset)}
	tail := Range{Block: r.Block.Other(), Offset: 0, Size: r.Size - head.Size}
	if tail.Size > iic.BlockSize {
		return nil, &RangeError{Range: r, Reason: "runs past the other block"}
	}
	return []Range{head, tail}, nil
}

// Pages splits a range that lies inside one block into page-sized pieces at
// 128-byte aligned boundaries. It returns nil for an empty range or one that
// leaves its block.
func Pages(r Range) []Range {
	if r.Size <= 0 || r.End() > iic.BlockSize {
		return nil
	}

	var pages []Range
	off := int(r.Offset)
	for off < r.End() {
		n := iic.PageSize - off%iic.PageSize
		if rest := r.End() - off; n > rest {
			n = rest
		}
		pages = append(pages, Range{Block: r.Block, Offset: uint16(off), Size: n})
		off += n
	}
	return pages
}

package study

import "strings"

// BlockKind classifies one line of document content.
type BlockKind int

const (
	BlockBlank BlockKind = iota
	BlockHeading
	BlockBullet
	BlockParagraph
)

// Block is one rendered line of document content.
type Block struct {
	Kind  BlockKind
	Level int // heading depth, 1 for "#"
	Text  string
}

// Blocks splits content into lines and classifies each: "#" headings
// (level = number of leading '#'), "- " bullets, blank lines and
// paragraphs. Markup is stripped from Text.
func Blocks(content string) []Block {
	if content == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	out := make([]Block, 0, len(lines))
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "#"):
			text := strings.TrimLeft(line, "#")
			out = append(out, Block{
				Kind:  BlockHeading,
				Level: len(line) - len(text),
				Text:  strings.TrimSpace(text),
			})
		case strings.HasPrefix(line, "- "):
			out = append(out, Block{Kind: BlockBullet, Text: line[2:]})
		case strings.TrimSpace(line) == "":
			out = append(out, Block{Kind: BlockBlank})
		default:
			out = append(out, Block{Kind: BlockParagraph, Text: line})
		}
	}
	return out
}

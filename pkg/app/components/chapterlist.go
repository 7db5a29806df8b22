package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tavoli/pensvm/pkg/app/styles"
	"github.com/tavoli/pensvm/pkg/data"
)

// ChapterListItem pairs a chapter index entry with its exercise count.
type ChapterListItem struct {
	Ref           data.ChapterRef
	ExerciseCount int
}

// ChapterList is a selectable card list over the chapter library index.
type ChapterList struct {
	Items         []ChapterListItem
	SelectedIndex int
	Width         int
	Height        int
}

func NewChapterList() *ChapterList {
	return &ChapterList{
		Items:  []ChapterListItem{},
		Width:  80,
		Height: 20,
	}
}

func (c *ChapterList) SetItems(items []ChapterListItem) {
	c.Items = items
	if c.SelectedIndex >= len(items) {
		c.SelectedIndex = 0
	}
}

func (c *ChapterList) Next() {
	if len(c.Items) == 0 {
		return
	}
	c.SelectedIndex++
	if c.SelectedIndex >= len(c.Items) {
		c.SelectedIndex = 0
	}
}

func (c *ChapterList) Prev() {
	if len(c.Items) == 0 {
		return
	}
	c.SelectedIndex--
	if c.SelectedIndex < 0 {
		c.SelectedIndex = len(c.Items) - 1
	}
}

func (c *ChapterList) Selected() *ChapterListItem {
	if len(c.Items) == 0 || c.SelectedIndex >= len(c.Items) {
		return nil
	}
	return &c.Items[c.SelectedIndex]
}

func (c *ChapterList) View() string {
	if len(c.Items) == 0 {
		emptyMsg := styles.MutedStyle.Render("No chapters in library")
		return lipgloss.Place(c.Width, c.Height, lipgloss.Center, lipgloss.Center, emptyMsg)
	}

	var b strings.Builder
	for i, item := range c.Items {
		title := fmt.Sprintf("Cap. %d  %s", item.Ref.Number, item.Ref.Title)
		meta := fmt.Sprintf("%d pages · %d exercises", item.Ref.PageCount, item.ExerciseCount)

		line := styles.TextStyle.Render(title) + "\n" + styles.MutedStyle.Render(meta)
		card := styles.CardStyle
		if i == c.SelectedIndex {
			card = card.BorderForeground(styles.Primary)
			line = styles.SelectedStyle.Render(title) + "\n" + styles.MutedStyle.Render(meta)
		}
		b.WriteString(card.Width(c.Width - 4).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

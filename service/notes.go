package service

import (
	"strings"

	"labbudget/database"
	"labbudget/models"
)

// NoteInput 新增或編輯筆記
type NoteInput struct {
	Date    string `json:"date"`
	Content string `json:"content"`
}

// NoteRow 筆記與其儲存位置
type NoteRow struct {
	Index int `json:"index"`
	models.Note
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return invalid("content", "內容不可為空")
	}
	return nil
}

// AddNote 新增筆記
func (l *Ledger) AddNote(in NoteInput) (n models.Note, err error) {
	defer func() { record("add_note", err) }()

	if err := validateContent(in.Content); err != nil {
		return models.Note{}, err
	}
	date, err := l.entryDate("date", in.Date)
	if err != nil {
		return models.Note{}, err
	}

	unlock := l.locks.lock(models.CollectionNotes)
	defer unlock()

	notes, err := database.Load[models.Note](l.store, models.CollectionNotes)
	if err != nil {
		return models.Note{}, err
	}
	n = models.Note{
		Date:      date,
		Content:   in.Content,
		CreatedAt: l.now().Format(models.TimestampLayout),
	}
	if err := database.Save(l.store, models.CollectionNotes, append(notes, n)); err != nil {
		return models.Note{}, err
	}
	return n, nil
}

// EditNote 只替換日期與內容，建立時間不變；日期空白則沿用
func (l *Ledger) EditNote(index int, in NoteInput) (n models.Note, err error) {
	defer func() { record("edit_note", err) }()

	if err := validateContent(in.Content); err != nil {
		return models.Note{}, err
	}
	date, err := keptDate("date", in.Date)
	if err != nil {
		return models.Note{}, err
	}

	unlock := l.locks.lock(models.CollectionNotes)
	defer unlock()

	notes, err := database.Load[models.Note](l.store, models.CollectionNotes)
	if err != nil {
		return models.Note{}, err
	}
	if err := checkIndex(index, len(notes), "筆記"); err != nil {
		return models.Note{}, err
	}

	if date != "" {
		notes[index].Date = date
	}
	notes[index].Content = in.Content
	if err := database.Save(l.store, models.CollectionNotes, notes); err != nil {
		return models.Note{}, err
	}
	return notes[index], nil
}

// DeleteNote 刪除筆記
func (l *Ledger) DeleteNote(index int) (n models.Note, err error) {
	defer func() { record("delete_note", err) }()

	unlock := l.locks.lock(models.CollectionNotes)
	defer unlock()

	notes, err := database.Load[models.Note](l.store, models.CollectionNotes)
	if err != nil {
		return models.Note{}, err
	}
	if err := checkIndex(index, len(notes), "筆記"); err != nil {
		return models.Note{}, err
	}

	n = notes[index]
	if err := database.Save(l.store, models.CollectionNotes, removeAt(notes, index)); err != nil {
		return models.Note{}, err
	}
	return n, nil
}

// ListNotes 最新的筆記在前
func (l *Ledger) ListNotes() ([]NoteRow, error) {
	unlock := l.locks.lock(models.CollectionNotes)
	defer unlock()

	notes, err := database.Load[models.Note](l.store, models.CollectionNotes)
	if err != nil {
		return nil, err
	}
	rows := make([]NoteRow, len(notes))
	for display := range notes {
		index := StorageIndex(len(notes), display)
		rows[display] = NoteRow{Index: index, Note: notes[index]}
	}
	return rows, nil
}

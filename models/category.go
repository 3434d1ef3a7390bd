package models

import (
	"bytes"
	"encoding/json"
	"sort"
)

// 經費類別常量（與既有資料檔的 key 完全一致，不可更動）
const (
	CategoryPersonnel      = "人事費"
	CategoryOperating      = "業務費"
	CategoryAdministrative = "行政管理費"
	CategoryMiscellaneous  = "雜支費"
	CategoryEquipment      = "設備費"
	CategoryTravelAbroad   = "國外差旅費"
	CategoryTravelDomestic = "國內旅費"
	CategoryCapital        = "資本門"
	CategoryCurrent        = "經常門"
)

// GetCategories 取得全部九個經費類別（固定順序）
func GetCategories() []string {
	return []string{
		CategoryPersonnel,
		CategoryOperating,
		CategoryAdministrative,
		CategoryMiscellaneous,
		CategoryEquipment,
		CategoryTravelAbroad,
		CategoryTravelDomestic,
		CategoryCapital,
		CategoryCurrent,
	}
}

// IsValidCategory 判斷是否為九個固定類別之一
func IsValidCategory(name string) bool {
	for _, c := range GetCategories() {
		if c == name {
			return true
		}
	}
	return false
}

// CategoryBudget 各類別預算金額
// 序列化時依固定類別順序輸出，其餘未知 key 依字典序附在後面
type CategoryBudget map[string]float64

// NewCategoryBudget 建立九個類別皆為 0 的預算表
func NewCategoryBudget() CategoryBudget {
	cb := make(CategoryBudget, len(GetCategories()))
	for _, c := range GetCategories() {
		cb[c] = 0
	}
	return cb
}

// Total 預算總額
func (cb CategoryBudget) Total() float64 {
	var total float64
	for _, v := range cb {
		total += v
	}
	return total
}

// Fill 補齊缺少的類別（預設 0）
func (cb CategoryBudget) Fill() CategoryBudget {
	if cb == nil {
		return NewCategoryBudget()
	}
	for _, c := range GetCategories() {
		if _, ok := cb[c]; !ok {
			cb[c] = 0
		}
	}
	return cb
}

// MarshalJSON 固定順序輸出
func (cb CategoryBudget) MarshalJSON() ([]byte, error) {
	if cb == nil {
		return []byte("null"), nil
	}

	keys := make([]string, 0, len(cb))
	for _, c := range GetCategories() {
		if _, ok := cb[c]; ok {
			keys = append(keys, c)
		}
	}
	var extra []string
	for k := range cb {
		if !IsValidCategory(k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	keys = append(keys, extra...)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(cb[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

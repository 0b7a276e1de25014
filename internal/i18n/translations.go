package i18n

import (
	"strings"
	"time"
)

var translations = map[string]map[string]string{
	"en": {
		"nav.about":        "About",
		"nav.writing":      "Writing",
		"common.noPosts":   "No posts yet",
		"common.created":   "Created",
		"common.updated":   "Updated",
		"common.notFound":  "Page not found",
		"common.contents":  "Contents",
		"search.title":     "Search",
		"search.noResults": "No results",
	},
	"ja": {
		"nav.about":        "アバウト",
		"nav.writing":      "ライティング",
		"common.noPosts":   "まだ投稿がありません",
		"common.created":   "作成",
		"common.updated":   "更新",
		"common.notFound":  "ページが見つかりません",
		"common.contents":  "目次",
		"search.title":     "検索",
		"search.noResults": "結果がありません",
	},
	"zhs": {
		"nav.about":        "关于",
		"nav.writing":      "写作",
		"common.noPosts":   "暂无文章",
		"common.created":   "创建",
		"common.updated":   "更新",
		"common.notFound":  "页面不存在",
		"common.contents":  "目录",
		"search.title":     "搜索",
		"search.noResults": "没有结果",
	},
	"zht": {
		"nav.about":        "關於",
		"nav.writing":      "寫作",
		"common.noPosts":   "暫無文章",
		"common.created":   "建立",
		"common.updated":   "更新",
		"common.notFound":  "頁面不存在",
		"common.contents":  "目錄",
		"search.title":     "搜尋",
		"search.noResults": "沒有結果",
	},
}

// T looks up key for code, falling back to English and then to the key.
func T(code string, key string) string {
	table, ok := translations[code]
	if !ok {
		table = translations[DefaultCode]
	}
	if value, ok := table[key]; ok {
		return value
	}
	return key
}

var dateLayouts = map[string]string{
	"en":  "January 2, 2006",
	"ja":  "2006年1月2日",
	"zhs": "2006年1月2日",
	"zht": "2006年1月2日",
}

var dateInputs = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDate renders an ISO-8601 timestamp as a long date for code.
// Unparsable values are returned as given.
func FormatDate(value string, code string) string {
	layout, ok := dateLayouts[code]
	if !ok {
		layout = dateLayouts[DefaultCode]
	}
	trimmed := strings.TrimSpace(value)
	for _, input := range dateInputs {
		if t, err := time.Parse(input, trimmed); err == nil {
			return t.Format(layout)
		}
	}
	return value
}

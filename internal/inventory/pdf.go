package inventory

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"rsc.io/pdf"
)

// ExtractPDFText PDF sayfalarındaki metni satır satır çıkarır. Parçalar aynı
// satırda (yaklaşık aynı Y koordinatı) soldan sağa birleştirilir.
// rsc.io/pdf bozuk dosyalarda panic'leyebilir, recover ile hataya çevrilir.
func ExtractPDFText(ra io.ReaderAt, size int64) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF okunamadı: %v", r)
		}
	}()

	reader, err := pdf.NewReader(ra, size)
	if err != nil {
		return "", fmt.Errorf("PDF okunamadı: %w", err)
	}

	var sb strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content := page.Content()

		// Y koordinatına göre satırlara grupla (PDF'de Y yukarı doğru artar)
		lines := make(map[int][]pdf.Text)
		for _, t := range content.Text {
			key := int(math.Round(t.Y))
			lines[key] = append(lines[key], t)
		}

		keys := make([]int, 0, len(lines))
		for k := range lines {
			keys = append(keys, k)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(keys)))

		for _, k := range keys {
			frags := lines[k]
			sort.Slice(frags, func(i, j int) bool { return frags[i].X < frags[j].X })

			var line strings.Builder
			var prevEnd float64
			for i, f := range frags {
				// Parçalar arasında belirgin boşluk varsa ayırıcı ekle
				if i > 0 && f.X-prevEnd > 1 {
					line.WriteByte(' ')
				}
				line.WriteString(f.S)
				prevEnd = f.X + f.W
			}
			sb.WriteString(line.String())
			sb.WriteByte('\n')
		}
	}

	return sb.String(), nil
}

// TableFromText serbest metinden tablo çıkarmayı dener. İlk boş olmayan satır
// başlık kabul edilir; her satır tespit edilen ayırıcıyla bölünür, bölünemeyen
// satırlar atlanır.
func TableFromText(text string) (*Table, error) {
	lines := strings.Split(text, "\n")

	delimiter := detectDelimiter(lines)

	var t Table
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cells := splitLine(line, delimiter)
		if len(cells) < 2 {
			continue
		}

		if t.Header == nil {
			t.Header = cells
			continue
		}
		t.Rows = append(t.Rows, cells)
	}

	if t.Header == nil {
		return nil, fmt.Errorf("metinden tablo çıkarılamadı")
	}
	return &t, nil
}

// detectDelimiter satırlarda en sık görülen ayırıcıyı seçer.
func detectDelimiter(lines []string) string {
	counts := map[string]int{"|": 0, ";": 0, "\t": 0, ",": 0}
	for _, line := range lines {
		for d := range counts {
			if strings.Count(line, d) >= 2 {
				counts[d]++
			}
		}
	}

	best := ","
	bestCount := 0
	for _, d := range []string{"|", ";", "\t", ","} {
		if counts[d] > bestCount {
			best = d
			bestCount = counts[d]
		}
	}
	return best
}

// splitLine satırı ayırıcıyla böler. Baş ve sondaki boş hücreler atılır
// ("|a|b|" biçimi için), aradaki boş hücreler kolon hizası bozulmasın diye korunur.
func splitLine(line, delimiter string) []string {
	parts := strings.Split(line, delimiter)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	for len(parts) > 0 && parts[0] == "" {
		parts = parts[1:]
	}
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

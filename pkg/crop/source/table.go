package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	"soilai/entities"
	"soilai/pkg/crop"
)

// column indexes resolved from a header row; -1 when absent.
type columns struct {
	name, moistMin, nMin, nRec, nRecHi, kMin, kRec, kRecHi, phMin, phMax int
}

func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

func resolveColumns(head []string) (columns, error) {
	hmap := map[string]int{}
	for i, h := range head {
		hmap[norm(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}
	c := columns{
		name:     findAny("crop", "name", "crop_type", "crop_name"),
		moistMin: findAny("moisture_min", "min_moisture", "moisture"),
		nMin:     findAny("nitrogen_min", "min_nitrogen", "nitrogen"),
		nRec:     findAny("nitrogen_recommendation", "nitrogen_rec"),
		nRecHi:   findAny("nitrogen_recommendation_hindi", "nitrogen_rec_hindi"),
		kMin:     findAny("potassium_min", "min_potassium", "potassium"),
		kRec:     findAny("potassium_recommendation", "potassium_rec"),
		kRecHi:   findAny("potassium_recommendation_hindi", "potassium_rec_hindi"),
		phMin:    findAny("ph_min", "min_ph"),
		phMax:    findAny("ph_max", "max_ph"),
	}
	if c.name == -1 {
		return c, fmt.Errorf("missing crop name column, found headers: %v", head)
	}
	return c, nil
}

// tableOverlay turns header + rows into a layer. A row with only a name adds the crop;
// any threshold cell makes it a profile override as well.
func tableOverlay(head []string, rows [][]string) (crop.Overlay, error) {
	c, err := resolveColumns(head)
	if err != nil {
		return crop.Overlay{}, err
	}
	ov := crop.Overlay{Profiles: map[string]entities.ProfileOverride{}}
	for i, rec := range rows {
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		name := get(c.name)
		if name == "" {
			continue
		}
		var o entities.ProfileOverride
		var set bool
		num := func(idx int, dst **float64) error {
			v := get(idx)
			if v == "" {
				return nil
			}
			f, err := parseNumber(v)
			if err != nil {
				return fmt.Errorf("row %d: %q is not a number", i+2, v)
			}
			*dst = &f
			set = true
			return nil
		}
		text := func(idx int, dst **string) {
			if v := get(idx); v != "" {
				*dst = &v
				set = true
			}
		}
		for _, n := range []struct {
			idx int
			dst **float64
		}{
			{c.moistMin, &o.MoistureMin},
			{c.nMin, &o.NitrogenMin},
			{c.kMin, &o.PotassiumMin},
			{c.phMin, &o.PHMin},
			{c.phMax, &o.PHMax},
		} {
			if err := num(n.idx, n.dst); err != nil {
				return crop.Overlay{}, err
			}
		}
		text(c.nRec, &o.NitrogenRecommendation)
		text(c.nRecHi, &o.NitrogenRecommendationHindi)
		text(c.kRec, &o.PotassiumRecommendation)
		text(c.kRecHi, &o.PotassiumRecommendationHindi)

		ov.Crops = append(ov.Crops, name)
		if set {
			ov.Profiles[name] = o
		}
	}
	return ov, nil
}

func readCSV(path string) (crop.Overlay, error) {
	f, err := os.Open(path)
	if err != nil {
		return crop.Overlay{}, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	head, err := cr.Read()
	if err != nil {
		return crop.Overlay{}, err
	}
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return crop.Overlay{}, err
		}
		rows = append(rows, rec)
	}
	return tableOverlay(head, rows)
}

func readXLSX(path string) (crop.Overlay, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return crop.Overlay{}, err
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return crop.Overlay{}, errors.New("workbook has no sheets")
	}
	rows, err := x.GetRows(sheets[0])
	if err != nil {
		return crop.Overlay{}, err
	}
	if len(rows) == 0 {
		return crop.Overlay{}, errors.New("first sheet is empty")
	}
	return tableOverlay(rows[0], rows[1:])
}

// readHTML takes the first <table> of the page; the header row may use th or td cells.
func readHTML(path string) (crop.Overlay, error) {
	f, err := os.Open(path)
	if err != nil {
		return crop.Overlay{}, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return crop.Overlay{}, err
	}
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return crop.Overlay{}, errors.New("no <table> found")
	}
	var all [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th,td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(td.Text()))
		})
		if len(cells) > 0 {
			all = append(all, cells)
		}
	})
	if len(all) == 0 {
		return crop.Overlay{}, errors.New("table has no rows")
	}
	return tableOverlay(all[0], all[1:])
}

// parseNumber accepts a decimal comma ("6,5"). A comma followed by exactly three digits
// ("1,200") could be a thousands separator and is rejected.
func parseNumber(v string) (float64, error) {
	if strings.Count(v, ",") == 1 && !strings.Contains(v, ".") {
		if i := strings.IndexByte(v, ','); len(v)-i-1 != 3 {
			v = strings.Replace(v, ",", ".", 1)
		}
	}
	return strconv.ParseFloat(v, 64)
}

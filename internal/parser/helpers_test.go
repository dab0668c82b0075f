package parser

// cells builds a grid row: strings become text, numbers become numeric
// cells and nil stays empty.
func cells(vals ...any) []Cell {
	out := make([]Cell, len(vals))
	for i, v := range vals {
		switch x := v.(type) {
		case nil:
		case string:
			out[i] = TextCell(x)
		case int:
			out[i] = NumCell(float64(x))
		case float64:
			out[i] = NumCell(x)
		}
	}
	return out
}

// dataRow lays a row out on the template: label at B, total at D, conduct
// block from E, study block from M.
func dataRow(label any, total any, conduct, study [8]float64) []Cell {
	vals := []any{nil, label, nil, total}
	for _, v := range conduct {
		vals = append(vals, v)
	}
	for _, v := range study {
		vals = append(vals, v)
	}
	return cells(vals...)
}

func templateHeader() []Cell {
	vals := []any{"STT", "Lớp", nil, "Sĩ số"}
	for i := 0; i < 2; i++ {
		vals = append(vals, "Tốt", "TL", "Khá", "TL", "Đạt", "TL", "CĐ", "TL")
	}
	return cells(vals...)
}

func metrics(good, fair, passed, failed int, total float64) [8]float64 {
	r := func(n int) float64 {
		if total == 0 {
			return 0
		}
		return float64(n) / total * 100
	}
	return [8]float64{
		float64(good), r(good), float64(fair), r(fair),
		float64(passed), r(passed), float64(failed), r(failed),
	}
}

// templateGrid is a small but complete school sheet.
func templateGrid() Grid {
	return Grid{
		cells("BÁO CÁO TỔNG HỢP XẾP LOẠI"),
		templateHeader(),
		dataRow("TOÀN TRƯỜNG", 151, metrics(123, 20, 6, 2, 151), metrics(90, 40, 19, 2, 151)),
		dataRow("KHỐI 6", 75, metrics(58, 12, 4, 1, 75), metrics(40, 25, 9, 1, 75)),
		dataRow("6A1", 40, metrics(30, 7, 2, 1, 40), metrics(20, 15, 4, 1, 40)),
		dataRow("6A2", 35, metrics(28, 5, 2, 0, 35), metrics(20, 10, 5, 0, 35)),
		dataRow("Tổng cộng", 75, metrics(58, 12, 4, 1, 75), metrics(40, 25, 9, 1, 75)),
		dataRow("KHỐI 7", 76, metrics(65, 8, 2, 1, 76), metrics(50, 15, 10, 1, 76)),
		dataRow("7A1", 42, metrics(35, 5, 1, 1, 42), metrics(30, 8, 3, 1, 42)),
		dataRow("Chuyên Anh", 34, metrics(30, 3, 1, 0, 34), metrics(20, 7, 7, 0, 34)),
		cells(nil, nil, nil, 12),
	}
}

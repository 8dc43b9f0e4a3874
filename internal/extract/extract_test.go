package extract

import (
	"reflect"
	"testing"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single citation",
			text: "as shown in arXiv:2406.11944, the method",
			want: []string{"2406.11944"},
		},
		{
			name: "version suffix stripped",
			text: "see arXiv:1901.00001v2 for details",
			want: []string{"1901.00001"},
		},
		{
			name: "multiple citations in order",
			text: "see arXiv:2406.11944 and arXiv:1901.00001v2 for details",
			want: []string{"2406.11944", "1901.00001"},
		},
		{
			name: "duplicates collapse to first appearance",
			text: "arXiv:1706.03762 ... later arXiv:1706.03762v5 again, plus arXiv:2010.11929",
			want: []string{"1706.03762", "2010.11929"},
		},
		{
			name: "same paper cited with and without version",
			text: "arXiv:2406.11944v1 arXiv:2406.11944",
			want: []string{"2406.11944"},
		},
		{
			name: "four digit sequence numbers",
			text: "early papers like arXiv:0704.0001",
			want: []string{"0704.0001"},
		},
		{
			name: "prefix required",
			text: "the year 2024.0156 is not a citation, nor is 1706.03762 bare",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scan(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Scan(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestCitationsMissingFile(t *testing.T) {
	// Unreadable documents degrade to an empty result, never an error.
	if got := Citations("/nonexistent/paper.pdf"); got != nil {
		t.Errorf("Citations on missing file = %v, want nil", got)
	}
}

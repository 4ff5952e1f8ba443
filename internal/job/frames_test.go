package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFrameList(t *testing.T) {
	tests := []struct {
		name    string
		items   []string
		wantErr bool
	}{
		{name: "single frame", items: []string{"5"}, wantErr: false},
		{name: "range", items: []string{"1-100"}, wantErr: false},
		{name: "range with step", items: []string{"1-100:2"}, wantErr: false},
		{name: "one valid item is enough", items: []string{"garbage", "7"}, wantErr: false},
		{name: "all invalid", items: []string{"abc", "-5", ""}, wantErr: true},
		{name: "empty list", items: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFrameList(tt.items)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateFileName(t *testing.T) {
	assert.NoError(t, ValidateFileName("scene_final_v2.max"))
	assert.Error(t, ValidateFileName("scene#final.max"))
	assert.Error(t, ValidateFileName(`render\out.max`))
	assert.Error(t, ValidateFileName("scène.max"))
}

func TestCleanJobName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"my scene.max", "myscene"},
		{"arch#viz:final.blend", "archvizfinal"},
		{"###.max", "untitled"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanJobName(tt.in))
	}
}

func TestListToRange(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1,2,3,7", "1-3,7"},
		{"1,2,3,4,5", "1-5"},
		{"10", "10"},
		{"1,3,5", "1,3,5"},
		{"not,numbers", "not,numbers"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ListToRange(tt.in))
	}
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTokens(t *testing.T) {
	body := "Bên bán: {{ben_ban}}, bên mua: {{ ben_mua }}.\nGiá: {{gia_ban}} ({{ben_ban}})"
	assert.Equal(t, []string{"ben_ban", "ben_mua", "gia_ban"}, ExtractTokens(body))
	assert.Nil(t, ExtractTokens("no placeholders here"))
}

func TestUndeclaredTokens(t *testing.T) {
	body := "Bên bán {{ben_ban}} bán cho {{ben_mua}} với giá {{gia_ban}}. Ghi chú: {{ghi_chu}}"

	// Fully declared across both lists: nothing undeclared.
	assert.Nil(t, UndeclaredTokens(body,
		[]string{"ben_ban", "ben_mua", "gia_ban"}, []string{"ghi_chu"}))

	// Tokens missing from both lists surface in appearance order.
	assert.Equal(t, []string{"gia_ban", "ghi_chu"},
		UndeclaredTokens(body, []string{"ben_ban"}, []string{"ben_mua"}))

	assert.Nil(t, UndeclaredTokens("no placeholders", nil, nil))
}

func TestMissingRequired(t *testing.T) {
	required := []string{"ben_ban", "ben_mua", "gia_ban"}
	values := map[string]string{
		"ben_ban": "Nguyễn Văn An",
		"ben_mua": "   ", // whitespace-only counts as missing
	}
	assert.Equal(t, []string{"ben_mua", "gia_ban"}, MissingRequired(required, values))
	assert.Nil(t, MissingRequired(nil, nil))
}

func TestRenderTemplate(t *testing.T) {
	body := "Bên bán {{ben_ban}} bán cho {{ben_mua}} với giá {{gia_ban}} đồng. Ghi chú: {{ghi_chu}}"
	required := []string{"ben_ban", "ben_mua", "gia_ban"}

	out, err := RenderTemplate(body, required, map[string]string{
		"ben_ban": "Nguyễn Văn An",
		"ben_mua": "Trần Thị Bình",
		"gia_ban": "3.500.000.000",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Nguyễn Văn An bán cho Trần Thị Bình")
	// Optional token with no value stays literal for later re-rendering.
	assert.Contains(t, out, "{{ghi_chu}}")

	_, err = RenderTemplate(body, required, map[string]string{"ben_ban": "A"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ben_mua")
	assert.Contains(t, err.Error(), "gia_ban")
}

func TestRenderTemplateEscapesValues(t *testing.T) {
	out, err := RenderTemplate("Chủ sở hữu: {{ten}}", []string{"ten"}, map[string]string{
		"ten": `<b>An & "Bình"</b>`,
	})
	require.NoError(t, err)
	assert.Equal(t, "Chủ sở hữu: &lt;b&gt;An &amp; &#34;Bình&#34;&lt;/b&gt;", out)
}

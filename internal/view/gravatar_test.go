package view

import "testing"

func TestGravatarURL_KnownHash(t *testing.T) {
	// md5("taro@example.com")
	got := GravatarURL("taro@example.com")
	want := "https://www.gravatar.com/avatar/258fe44af56b618ac3b0f9618c70d048?s=100&d=retro&r=g"
	if got != want {
		t.Errorf("url = %q, want %q", got, want)
	}
}

func TestGravatarURL_NormalizesEmail(t *testing.T) {
	// 前後の空白と大文字小文字を正規化してからハッシュ化する
	base := GravatarURL("taro@example.com")
	normalized := GravatarURL("  TARO@Example.COM  ")
	if base != normalized {
		t.Errorf("normalized url = %q, want %q", normalized, base)
	}
}

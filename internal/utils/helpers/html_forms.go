package helpers

import (
	"fmt"
	"html"
	"time"
)

// BuildPasswordResetHTML — письмо со ссылкой на сброс пароля.
func BuildPasswordResetHTML(resetLink string, ttl time.Duration) string {
	link := html.EscapeString(resetLink)
	return fmt.Sprintf(`
<html>
  <body style="font-family:Arial,sans-serif; background:#f9f9f9;">
    <table width="100%%" cellpadding="0" cellspacing="0" bgcolor="#f9f9f9">
      <tr>
        <td align="center" style="padding:32px 0;">
          <table width="500" bgcolor="#fff" cellpadding="24" cellspacing="0" style="border-radius:8px; box-shadow:0 1px 6px #eee;">
            <tr>
              <td>
                <h2 style="color:#2d74da; margin-top:0;">Reset your API Forge password</h2>
                <p style="font-size:16px; color:#222;">Someone requested a password reset for your account.</p>
                <p>Click <a href="%s">here</a> to reset your password, or use the button below:</p>
                <p>
                  <a href="%s" style="display:inline-block;padding:12px 24px;background:#2d74da;color:#fff;text-decoration:none;border-radius:5px;font-weight:bold;">
                    Reset password
                  </a>
                </p>
                <p style="font-size:14px; color:#666;">The link is valid for %s.</p>
                <hr style="margin:32px 0 16px 0; border:0; border-top:1px solid #eee;">
                <div style="font-size:12px; color:#999;">If you did not request a password reset, you can ignore this email.</div>
              </td>
            </tr>
          </table>
        </td>
      </tr>
    </table>
  </body>
</html>
`, link, link, humanDuration(ttl))
}

func humanDuration(d time.Duration) string {
	switch {
	case d == time.Hour:
		return "1 hour"
	case d%time.Hour == 0:
		return fmt.Sprintf("%d hours", int(d/time.Hour))
	case d%time.Minute == 0:
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	default:
		return d.String()
	}
}

package auth

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func TestToken(t *testing.T) {
	Convey("Given a mocked keyring", t, func() {
		keyring.MockInit()

		Convey("Token should be empty before anything is stored", func() {
			token, err := Token()
			So(err, ShouldBeNil)
			So(token, ShouldBeEmpty)
		})

		Convey("SetToken should trim and persist the token", func() {
			So(SetToken("  secret \n"), ShouldBeNil)
			token, err := Token()
			So(err, ShouldBeNil)
			So(token, ShouldEqual, "secret")

			Convey("DeleteToken should remove it", func() {
				So(DeleteToken(), ShouldBeNil)
				token, _ := Token()
				So(token, ShouldBeEmpty)
				So(DeleteToken(), ShouldBeNil)
			})
		})

		Convey("SetToken should reject blank tokens", func() {
			So(SetToken("  "), ShouldEqual, ErrEmptyToken)
		})
	})
}

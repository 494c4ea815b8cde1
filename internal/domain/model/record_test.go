package model_test

import (
	"testing"

	"github.com/okian/podium/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseMedal(t *testing.T) {
	Convey("Given raw medal cells", t, func() {
		Convey("When the cell names a medal in any case", func() {
			Convey("Then it should map to that medal", func() {
				So(model.ParseMedal("Gold"), ShouldEqual, model.Gold)
				So(model.ParseMedal(" silver "), ShouldEqual, model.Silver)
				So(model.ParseMedal("BRONZE"), ShouldEqual, model.Bronze)
			})
		})

		Convey("When the cell is empty or the sentinel", func() {
			Convey("Then both should mean no medal", func() {
				So(model.ParseMedal(""), ShouldEqual, model.NoMedal)
				So(model.ParseMedal("No Medal"), ShouldEqual, model.NoMedal)
				So(model.ParseMedal("No Medal").Present(), ShouldBeFalse)
				So(model.ParseMedal("").Label(), ShouldEqual, model.NoMedalLabel)
			})
		})
	})
}

func TestParticipationRecord_Accessors(t *testing.T) {
	Convey("Given a participation record", t, func() {
		r := model.ParticipationRecord{
			Year:              2000,
			Type:              model.Summer,
			NOC:               "USA",
			Gender:            "Male",
			Age:               model.Float(24),
			Medal:             model.Gold,
			Name:              "A",
			Discipline:        "100m",
			DisciplineGrouped: "Athletics",
		}

		Convey("When reading categorical fields", func() {
			Convey("Then each known field should resolve", func() {
				v, ok := r.Category(model.FieldYear)
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, "2000")

				v, _ = r.Category(model.FieldMedal)
				So(v, ShouldEqual, "Gold")

				v, _ = r.Category(model.FieldDisciplineGrouped)
				So(v, ShouldEqual, "Athletics")
			})

			Convey("And numeric-only fields should be rejected", func() {
				_, ok := r.Category(model.FieldAge)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When reading numeric fields", func() {
			Convey("Then present values should be returned", func() {
				v, ok := r.Value(model.FieldAge)
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 24.0)
			})

			Convey("And null values should report not ok", func() {
				_, ok := r.Value(model.FieldHeight)
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestParseCells(t *testing.T) {
	Convey("Given malformed and null cells", t, func() {
		Convey("Then null tokens should be recognised", func() {
			So(model.IsNull(""), ShouldBeTrue)
			So(model.IsNull(" NaN "), ShouldBeTrue)
			So(model.IsNull("NA"), ShouldBeTrue)
			So(model.IsNull("0"), ShouldBeFalse)
		})

		Convey("Then unparseable numbers should coerce to nil", func() {
			So(model.ParseFloat("abc"), ShouldBeNil)
			So(model.ParseFloat(""), ShouldBeNil)
			So(*model.ParseFloat("23.5"), ShouldEqual, 23.5)
		})

		Convey("Then years should accept float text", func() {
			So(model.ParseYear("2000"), ShouldEqual, 2000)
			So(model.ParseYear("2000.0"), ShouldEqual, 2000)
			So(model.ParseYear("twenty"), ShouldEqual, 0)
		})

		Convey("Then dates should parse in the supported layouts", func() {
			So(model.ParseDate("1990-05-17"), ShouldNotBeNil)
			So(model.ParseDate("17/05/1990").Year(), ShouldEqual, 1990)
			So(model.ParseDate("yesterday"), ShouldBeNil)
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given the field registry", t, func() {
		So(model.FieldNOC.Categorical(), ShouldBeTrue)
		So(model.FieldAge.Categorical(), ShouldBeFalse)
		So(model.FieldAge.Numeric(), ShouldBeTrue)
		So(model.FieldWeight.Numeric(), ShouldBeTrue)
		So(model.FieldName.Numeric(), ShouldBeFalse)
		So(model.Field("shoe_size").Categorical(), ShouldBeFalse)
	})
}
